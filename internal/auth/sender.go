package auth

import (
	"context"
	"log/slog"
)

// CodeSender delivers a one-time code to the subject's registered channel.
// SMS/email delivery is an external collaborator; this repo only ships the
// log sender for development.
type CodeSender interface {
	Send(ctx context.Context, subjectID, code string) error
}

// LogSender writes the code to the log instead of delivering it. Dev only.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, subjectID, code string) error {
	s.Logger.InfoContext(ctx, "one-time code issued (dev sender, not delivered)",
		"subject_id", subjectID,
		"code", code,
	)
	return nil
}
