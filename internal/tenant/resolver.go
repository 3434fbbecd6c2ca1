// Package tenant resolves which tenant an inbound request acts for.
//
// The CRUD layer only ever sees the resolved id through the request context,
// so the way a tenant is established (a trusted header today, a signed token
// or a session tomorrow) can be swapped by choosing another Resolver.
package tenant

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultHeader = "X-Tenant-Id"
	DefaultQuery  = "tenant_id"
	DefaultID     = int64(1)
)

// ErrUnresolved is returned by resolvers that refuse to fall back to a
// default tenant.
var ErrUnresolved = errors.New("tenant could not be resolved")

type Resolver interface {
	Resolve(r *http.Request) (int64, error)
}

// HeaderResolver trusts whatever integer the caller sends. No authentication
// is performed.
type HeaderResolver struct {
	Header  string
	Query   string // consulted when the header is absent; empty disables it
	Default int64
}

// NewHeaderResolver returns a resolver reading header, falling back to
// defaultID when the value is absent or not an integer.
func NewHeaderResolver(header string, defaultID int64) *HeaderResolver {
	if header == "" {
		header = DefaultHeader
	}
	return &HeaderResolver{Header: header, Default: defaultID}
}

// ForUpgrade returns a copy of r that also accepts the tenant as a query
// parameter. Browsers cannot set headers on websocket upgrades, so only the
// events route should use it.
func ForUpgrade(r Resolver) Resolver {
	switch v := r.(type) {
	case *HeaderResolver:
		cp := *v
		cp.Query = DefaultQuery
		return &cp
	case *TokenResolver:
		cp := *v
		cp.query = tokenQuery
		return &cp
	}
	return r
}

func (h *HeaderResolver) Resolve(r *http.Request) (int64, error) {
	raw := r.Header.Get(h.Header)
	if raw == "" && h.Query != "" {
		raw = r.URL.Query().Get(h.Query)
	}
	return ParseID(raw, h.Default), nil
}

// ParseID parses raw as a base-10 tenant id, returning def when it is not one.
func ParseID(raw string, def int64) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return def
	}
	return id
}
