package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// SeedPair holds the secret server seed, its published commitment, the
// player-supplied client seed and the monotonic nonce counter. Retired pairs
// are kept so past outcomes stay verifiable.
type SeedPair struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"account_id"`
	ServerSeed string     `json:"-"` // revealed only on rotation
	Commitment string     `json:"commitment"`
	ClientSeed string     `json:"client_seed"`
	Nonce      int64      `json:"nonce"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	RetiredAt  *time.Time `json:"retired_at,omitempty"`
}

// Commit returns the hex SHA-256 commitment for a server seed. The commitment
// is published before any bet uses the pair, so the operator cannot swap the
// secret after play begins.
func Commit(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// VerifyCommitment checks a revealed server seed against its published
// commitment.
func VerifyCommitment(serverSeed, commitment string) bool {
	return Commit(serverSeed) == commitment
}
