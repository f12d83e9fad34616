// Package auth carries the authorization gate consumed before sensitive
// operations. The actual biometric/PIN prompt lives outside this process.
package auth

import "go.uber.org/zap"

// Gate authorizes a sensitive operation. Implementations return an error when
// the grant is denied.
type Gate interface {
	Authorize(reason string) error
}

// LoggingGate grants every request and records the reason. Used when no
// interactive gate is attached; the wallet password prompted at startup is
// the effective access control.
type LoggingGate struct {
	Log *zap.Logger
}

func (g LoggingGate) Authorize(reason string) error {
	if g.Log != nil {
		g.Log.Info("authorization granted", zap.String("reason", reason))
	}
	return nil
}
