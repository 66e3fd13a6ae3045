// Package services contains server-side business logic: the authentication
// pipeline that turns a login submission into a Verdict, and user seeding.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"io"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/store"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
)

// AuthService checks submissions against the credential store. It holds no
// per-request state and is safe for concurrent use.
type AuthService struct {
	store    store.Store
	verifier verifier.Verifier
	logger   logging.Logger

	// decoy is verified against when the identifier is unknown so that an
	// absent user costs about as much as a wrong password.
	decoy string
}

func NewAuthService(s store.Store, v verifier.Verifier, logger logging.Logger) *AuthService {
	svc := &AuthService{
		store:    s,
		verifier: v,
		logger:   logger.With("module", "auth"),
	}

	decoy, err := v.Hash(hex.EncodeToString(common.GenerateRandByteArray(16)))
	if err != nil {
		svc.logger.Error(context.Background(), "decoy verifier unavailable, unknown identifiers will answer faster",
			"scheme", v.Scheme(), "error", err)
	}
	svc.decoy = decoy
	return svc
}

// AuthenticateBody decodes a request body and authenticates it.
func (s *AuthService) AuthenticateBody(ctx context.Context, body io.Reader) Verdict {
	sub, ok := DecodeSubmission(body)
	if !ok {
		s.logger.Warn(ctx, "malformed login body")
		return Verdict{Kind: VerdictMalformedRequest}
	}
	return s.Authenticate(ctx, sub)
}

// Authenticate never returns an error: every failure is a Verdict kind.
// Not-found and wrong-secret both yield VerdictInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, sub Submission) Verdict {
	if !sub.Valid() {
		s.logger.Warn(ctx, "login rejected: missing identifier or secret")
		return Verdict{Kind: VerdictMalformedRequest}
	}

	user, err := s.store.Lookup(ctx, sub.Identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.verifier.Verify(sub.Secret, s.decoy)
			s.logger.Info(ctx, "login rejected: invalid credentials")
			return Verdict{Kind: VerdictInvalidCredentials}
		}
		s.logger.Error(ctx, "credential store unavailable", "error", err)
		return Verdict{Kind: VerdictStoreUnavailable}
	}

	if !s.verifier.Verify(sub.Secret, user.Verifier) {
		s.logger.Info(ctx, "login rejected: invalid credentials")
		return Verdict{Kind: VerdictInvalidCredentials}
	}

	s.logger.Info(ctx, "login accepted", "uid", user.ID)
	return success(user.ID, user.DisplayName)
}
