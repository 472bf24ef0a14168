// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker/reverts"
)

// PrincipalHeader carries the calling principal. Authentication happens upstream.
const PrincipalHeader = "X-Principal"

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

func (e *httpError) Unwrap() error {
	return e.cause
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return HTTPError(cause, http.StatusBadRequest)
}

// Forbidden convenience method to create http forbidden error.
func Forbidden(cause error) error {
	return HTTPError(cause, http.StatusForbidden)
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return HTTPError(cause, http.StatusNotFound)
}

// StatusOf maps an engine error to its response status.
func StatusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	if errors.Is(err, reverts.ErrStakeNotFound) {
		return http.StatusNotFound
	}
	kind, ok := reverts.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case reverts.Validation:
		return http.StatusBadRequest
	case reverts.Precondition, reverts.Resource:
		return http.StatusConflict
	case reverts.Authorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// Engine errors are mapped by kind; anything else responds http.StatusInternalServerError.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		body := ErrorBody{Error: err.Error()}
		var revert *reverts.ErrRevert
		if errors.As(err, &revert) {
			body.Code = revert.Code()
		}
		w.Header().Set("Content-Type", JSONContentType)
		w.WriteHeader(StatusOf(err))
		_ = json.NewEncoder(w).Encode(&body)
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON parse a JSON object using strict mode.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// Principal returns the caller named by the X-Principal header.
func Principal(r *http.Request) (core.Address, error) {
	raw := r.Header.Get(PrincipalHeader)
	if raw == "" {
		return core.Address{}, Forbidden(errors.New("missing " + PrincipalHeader + " header"))
	}
	addr, err := core.ParseAddress(raw)
	if err != nil {
		return core.Address{}, BadRequest(errors.New(PrincipalHeader + ": " + err.Error()))
	}
	return *addr, nil
}

// AddressVar parses a path variable holding an address.
func AddressVar(r *http.Request, name string) (core.Address, error) {
	addr, err := core.ParseAddress(mux.Vars(r)[name])
	if err != nil {
		return core.Address{}, BadRequest(errors.New(name + ": " + err.Error()))
	}
	return *addr, nil
}

// Uint64Var parses a path variable holding an unsigned integer.
func Uint64Var(r *http.Request, name string) (uint64, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, BadRequest(errors.New(name + ": invalid number"))
	}
	return v, nil
}

// Uint64Query parses an optional query parameter, returning def when absent.
func Uint64Query(r *http.Request, name string, def uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.New(name + ": invalid number"))
	}
	return v, nil
}

// M shortcut for type map[string]any.
type M map[string]any
