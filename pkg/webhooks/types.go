// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

type KratosIdentity struct {
	ID                  string              `json:"id"`
	Traits              KratosTraits        `json:"traits"`
	VerifiableAddresses []VerifiableAddress `json:"verifiable_addresses,omitempty"`
}

type KratosTraits struct {
	Email string `json:"email"`
}

type VerifiableAddress struct {
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
}

// TokenHookResponse is the body Hydra merges into the issued tokens.
type TokenHookResponse struct {
	Session TokenHookSession `json:"session"`
}

type TokenHookSession struct {
	IDToken     map[string]any `json:"id_token,omitempty"`
	AccessToken map[string]any `json:"access_token,omitempty"`
}
