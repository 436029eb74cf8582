package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"crossverify/internal/audit"
	"crossverify/internal/auth/store"
	"crossverify/pkg/domainerrors"
	"crossverify/pkg/platform/sentinel"
)

// AuditEmitter records auth activity. Emit failures are logged, never fatal.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the one-time-code login flow. Codes are 6 digits, stored only
// as bcrypt hashes with a TTL, and consumed on first confirmation attempt.
// Whether the subject is entitled to log in at all (credential checks,
// enrollment) stays with external collaborators.
type Service struct {
	codes   store.CodeStore
	sender  CodeSender
	tokens  *TokenService
	codeTTL time.Duration
	auditor AuditEmitter
	logger  *slog.Logger
}

func NewService(codes store.CodeStore, sender CodeSender, tokens *TokenService, codeTTL time.Duration, auditor AuditEmitter, logger *slog.Logger) *Service {
	return &Service{
		codes:   codes,
		sender:  sender,
		tokens:  tokens,
		codeTTL: codeTTL,
		auditor: auditor,
		logger:  logger,
	}
}

// RequestCode generates a fresh code for the subject, stores its hash with
// the configured TTL, and hands the plaintext to the sender. A previous
// pending code is overwritten.
func (s *Service) RequestCode(ctx context.Context, subjectID string) error {
	if subjectID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "subject_id is required")
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash code: %w", err)
	}
	if err := s.codes.Save(ctx, subjectID, string(hash), s.codeTTL); err != nil {
		return fmt.Errorf("store pending code: %w", err)
	}
	if err := s.sender.Send(ctx, subjectID, code); err != nil {
		return domainerrors.Wrap(domainerrors.CodeUnavailable, "failed to deliver one-time code", err)
	}

	s.emit(ctx, audit.Event{Action: audit.ActionCodeRequested, Subject: subjectID})
	return nil
}

// ConfirmCode consumes the pending code and issues an access token. The code
// is removed from the store before comparison, so a wrong guess burns it.
func (s *Service) ConfirmCode(ctx context.Context, subjectID, code string) (string, error) {
	if subjectID == "" || code == "" {
		return "", domainerrors.New(domainerrors.CodeValidation, "subject_id and code are required")
	}

	hash, err := s.codes.Take(ctx, subjectID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrExpired):
			return "", domainerrors.New(domainerrors.CodeUnauthorized, "code has expired")
		case errors.Is(err, sentinel.ErrNotFound):
			return "", domainerrors.New(domainerrors.CodeUnauthorized, "no pending code for this subject")
		default:
			return "", fmt.Errorf("take pending code: %w", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		s.logger.WarnContext(ctx, "incorrect one-time code", "subject_id", subjectID)
		return "", domainerrors.New(domainerrors.CodeUnauthorized, "incorrect code")
	}

	token, err := s.tokens.Generate(subjectID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.emit(ctx, audit.Event{Action: audit.ActionCodeConfirmed, Subject: subjectID})
	return token, nil
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
