// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/reverts"
	"github.com/spacemoney/stakeledger/store"
)

var (
	slotMeta = core.BytesToBytes32([]byte("platform-meta"))

	slotTreasury = map[core.Asset]core.Bytes32{
		core.Native: core.BytesToBytes32([]byte("treasury-native")),
		core.Token:  core.BytesToBytes32([]byte("treasury-token")),
	}
	slotTotalStaked = map[core.Asset]core.Bytes32{
		core.Native: core.BytesToBytes32([]byte("total-staked-native")),
		core.Token:  core.BytesToBytes32([]byte("total-staked-token")),
	}
	slotRewardsPaid = map[core.Asset]core.Bytes32{
		core.Native: core.BytesToBytes32([]byte("rewards-paid-native")),
		core.Token:  core.BytesToBytes32([]byte("rewards-paid-token")),
	}
)

// Meta is the platform wide configuration record.
type Meta struct {
	Admin       core.Address
	TokenMint   core.Address
	Paused      bool
	CreatedAt   uint64
	Initialized bool
}

// State is a point in time snapshot of the platform.
type State struct {
	Meta
	Treasury    map[core.Asset]*uint256.Int
	TotalStaked map[core.Asset]*uint256.Int
	RewardsPaid map[core.Asset]*uint256.Int
}

// Service is the platform state: admin, pause flag, token mint and the per asset
// treasury, staked and rewards-paid pools.
type Service struct {
	meta        *store.Raw[*Meta]
	treasury    map[core.Asset]*store.Uint256
	totalStaked map[core.Asset]*store.Uint256
	rewardsPaid map[core.Asset]*store.Uint256
}

func New(sctx *store.Context) *Service {
	s := &Service{
		meta:        store.NewRaw[*Meta](sctx, slotMeta),
		treasury:    make(map[core.Asset]*store.Uint256),
		totalStaked: make(map[core.Asset]*store.Uint256),
		rewardsPaid: make(map[core.Asset]*store.Uint256),
	}
	for _, a := range core.Assets {
		s.treasury[a] = store.NewUint256(sctx, slotTreasury[a])
		s.totalStaked[a] = store.NewUint256(sctx, slotTotalStaked[a])
		s.rewardsPaid[a] = store.NewUint256(sctx, slotRewardsPaid[a])
	}
	return s
}

func (s *Service) getMeta() (*Meta, error) {
	m, err := s.meta.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get platform meta")
	}
	if m == nil {
		return &Meta{}, nil
	}
	return m, nil
}

func (s *Service) setMeta(m *Meta) error {
	return errors.Wrap(s.meta.Set(m), "failed to set platform meta")
}

// Meta returns the platform configuration record.
func (s *Service) Meta() (*Meta, error) {
	return s.getMeta()
}

// Initialize records the initial admin and token mint. It can only run once.
func (s *Service) Initialize(admin, tokenMint core.Address, now uint64) error {
	m, err := s.getMeta()
	if err != nil {
		return err
	}
	if m.Initialized {
		return reverts.ErrAlreadyInitialized
	}
	if admin.IsZero() {
		return reverts.ErrInvalidAddress.Withf("admin must be set")
	}
	return s.setMeta(&Meta{
		Admin:       admin,
		TokenMint:   tokenMint,
		CreatedAt:   now,
		Initialized: true,
	})
}

func (s *Service) SetAdmin(admin core.Address) error {
	if admin.IsZero() {
		return reverts.ErrInvalidAddress.Withf("admin must be set")
	}
	m, err := s.getMeta()
	if err != nil {
		return err
	}
	m.Admin = admin
	return s.setMeta(m)
}

func (s *Service) SetPaused(paused bool) error {
	m, err := s.getMeta()
	if err != nil {
		return err
	}
	m.Paused = paused
	return s.setMeta(m)
}

func (s *Service) SetTokenMint(mint core.Address) error {
	if mint.IsZero() {
		return reverts.ErrInvalidTokenMint.Withf("mint must be set")
	}
	m, err := s.getMeta()
	if err != nil {
		return err
	}
	m.TokenMint = mint
	return s.setMeta(m)
}

func checkAsset(asset core.Asset) error {
	if !asset.Valid() {
		return reverts.ErrInvalidAsset
	}
	return nil
}

func add(slot *store.Uint256, amount *uint256.Int) error {
	if err := slot.Add(amount); err != nil {
		if errors.Is(err, store.ErrOverflow) {
			return reverts.ErrNumericalOverflow
		}
		return err
	}
	return nil
}

func sub(slot *store.Uint256, amount *uint256.Int) error {
	if err := slot.Sub(amount); err != nil {
		if errors.Is(err, store.ErrUnderflow) {
			return reverts.ErrArithmeticUnderflow
		}
		return err
	}
	return nil
}

// AddFee credits a deposit fee or a forfeited penalty to the treasury.
func (s *Service) AddFee(asset core.Asset, amount *uint256.Int) error {
	if err := checkAsset(asset); err != nil {
		return err
	}
	return add(s.treasury[asset], amount)
}

func (s *Service) AddStaked(asset core.Asset, amount *uint256.Int) error {
	if err := checkAsset(asset); err != nil {
		return err
	}
	return add(s.totalStaked[asset], amount)
}

// RemoveStaked fails with an integrity error when the pool would go negative.
func (s *Service) RemoveStaked(asset core.Asset, amount *uint256.Int) error {
	if err := checkAsset(asset); err != nil {
		return err
	}
	return sub(s.totalStaked[asset], amount)
}

func (s *Service) AddRewardsPaid(asset core.Asset, amount *uint256.Int) error {
	if err := checkAsset(asset); err != nil {
		return err
	}
	return add(s.rewardsPaid[asset], amount)
}

// Withdraw debits the treasury for an admin transfer.
func (s *Service) Withdraw(asset core.Asset, amount *uint256.Int) error {
	if err := checkAsset(asset); err != nil {
		return err
	}
	balance, err := s.treasury[asset].Get()
	if err != nil {
		return errors.Wrap(err, "failed to get treasury")
	}
	if balance.Lt(amount) {
		return reverts.ErrInsufficientTreasuryBalance.Withf("have %s, want %s", balance.Dec(), amount.Dec())
	}
	return sub(s.treasury[asset], amount)
}

func (s *Service) Treasury(asset core.Asset) (*uint256.Int, error) {
	if err := checkAsset(asset); err != nil {
		return nil, err
	}
	return s.treasury[asset].Get()
}

func (s *Service) TotalStaked(asset core.Asset) (*uint256.Int, error) {
	if err := checkAsset(asset); err != nil {
		return nil, err
	}
	return s.totalStaked[asset].Get()
}

func (s *Service) RewardsPaid(asset core.Asset) (*uint256.Int, error) {
	if err := checkAsset(asset); err != nil {
		return nil, err
	}
	return s.rewardsPaid[asset].Get()
}

// State returns a snapshot of the platform.
func (s *Service) State() (*State, error) {
	m, err := s.getMeta()
	if err != nil {
		return nil, err
	}
	st := &State{
		Meta:        *m,
		Treasury:    make(map[core.Asset]*uint256.Int),
		TotalStaked: make(map[core.Asset]*uint256.Int),
		RewardsPaid: make(map[core.Asset]*uint256.Int),
	}
	for _, a := range core.Assets {
		if st.Treasury[a], err = s.treasury[a].Get(); err != nil {
			return nil, err
		}
		if st.TotalStaked[a], err = s.totalStaked[a].Get(); err != nil {
			return nil, err
		}
		if st.RewardsPaid[a], err = s.rewardsPaid[a].Get(); err != nil {
			return nil, err
		}
	}
	return st, nil
}
