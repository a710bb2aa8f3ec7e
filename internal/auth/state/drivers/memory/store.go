// Package memory is the process-local state driver. All three registries are
// mutex-guarded maps; read-modify-write sequences hold the lock for the whole
// sequence, which is what makes OTP redemption linearizable per key.
package memory

import (
	"context"

	"github.com/coffeelux/auth/internal/auth/state"
)

type Store struct {
	sessions *sessionsRepo
	otp      *otpRepo
	flows    *flowsRepo
}

func NewStore() *Store {
	return &Store{
		sessions: newSessionsRepo(),
		otp:      newOTPRepo(),
		flows:    newFlowsRepo(),
	}
}

func (s *Store) Sessions() state.Sessions { return s.sessions }
func (s *Store) OTP() state.OTP           { return s.otp }
func (s *Store) Flows() state.Flows       { return s.flows }

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close() error                   { return nil }
