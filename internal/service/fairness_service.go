package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"fair-wager-core/config"
	"fair-wager-core/internal/core/domain"
	"fair-wager-core/internal/core/ports"
	"fair-wager-core/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	diceRange    = 100
	wheelPockets = 37 // single-zero roulette
	drawBytes    = 4
	crashScale   = 100 // two decimal places, rounded down

	defaultMineCount     = 3
	crashVerifyTolerance = 1e-9

	// plinkoLeftBias is the probability of a ball stepping left at each peg
	// row. It sits a hair under one half; the bulk of the house edge lives in
	// the bucket multiplier tables.
	plinkoLeftBias    = 0.499975
	defaultPlinkoRows = 16
)

// plinkoMultipliers maps row counts to per-bucket payout multipliers. The
// bucket index is the number of left steps taken; tables are symmetric with
// the big payouts at the edges.
var plinkoMultipliers = map[int][]float64{
	11: {120, 14, 5.2, 1.4, 0.4, 0.2, 0.2, 0.4, 1.4, 5.2, 14, 120},
	12: {170, 24, 8.1, 2, 0.7, 0.2, 0.2, 0.2, 0.7, 2, 8.1, 24, 170},
	13: {260, 37, 11, 4, 1, 0.2, 0.2, 0.2, 0.2, 1, 4, 11, 37, 260},
	14: {420, 56, 18, 5, 1.9, 0.3, 0.2, 0.2, 0.2, 0.3, 1.9, 5, 18, 56, 420},
	15: {620, 83, 27, 8, 3, 0.5, 0.2, 0.2, 0.2, 0.2, 0.5, 3, 8, 27, 83, 620},
	16: {1000, 130, 26, 9, 4, 2, 0.2, 0.2, 0.2, 0.2, 0.2, 2, 4, 9, 26, 130, 1000},
}

// FairnessServiceImpl implements ports.FairnessService. It is stateless and
// pure: every outcome is a deterministic function of the seed triple.
type FairnessServiceImpl struct {
	cfg config.FairnessConfig
	log zerolog.Logger
}

// NewFairnessService creates a new FairnessServiceImpl.
func NewFairnessService(cfg config.FairnessConfig, log zerolog.Logger) *FairnessServiceImpl {
	return &FairnessServiceImpl{cfg: cfg, log: log}
}

// Outcome computes the verifiable result for a seed triple.
func (s *FairnessServiceImpl) Outcome(req ports.OutcomeRequest) (*domain.Outcome, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	switch req.GameType {
	case domain.GameDice:
		return s.singleDraw(req, func(v float64) float64 {
			roll := math.Floor(v * diceRange)
			if roll >= diceRange {
				roll = diceRange - 1
			}
			return roll
		})
	case domain.GameWheel:
		return s.singleDraw(req, func(v float64) float64 {
			pocket := math.Floor(v * wheelPockets)
			if pocket >= wheelPockets {
				pocket = wheelPockets - 1
			}
			return pocket
		})
	case domain.GameCrash:
		edge := s.cfg.CrashHouseEdge
		if req.HouseEdge != nil {
			edge = *req.HouseEdge
		}
		if edge < 0 || edge >= 1 {
			return nil, apperror.ErrFairnessConfiguration(fmt.Sprintf("crash house edge %v outside [0, 1)", edge))
		}
		return s.singleDraw(req, func(v float64) float64 {
			return s.crashMultiplier(v, edge)
		})
	case domain.GameMines:
		return s.mines(req)
	case domain.GamePlinko:
		return s.plinko(req)
	default:
		return nil, apperror.ErrUnknownGame(string(req.GameType))
	}
}

// Verify recomputes an outcome from the revealed server seed and compares it
// against the previously shown value.
func (s *FairnessServiceImpl) Verify(req ports.VerifyRequest) (*ports.VerifyResult, error) {
	recomputed, err := s.Outcome(req.OutcomeRequest)
	if err != nil {
		return nil, err
	}

	valid := false
	switch req.GameType {
	case domain.GameCrash:
		// Multiplier comparison tolerates float representation noise; the
		// digest comparison below is still exact.
		valid = math.Abs(recomputed.Value-req.ClaimedValue) <= crashVerifyTolerance
	case domain.GameMines:
		valid = equalCells(recomputed.Cells, req.ClaimedCells)
	default:
		valid = recomputed.Value == req.ClaimedValue
	}

	return &ports.VerifyResult{IsValid: valid, Recomputed: recomputed}, nil
}

func (s *FairnessServiceImpl) validate(req ports.OutcomeRequest) error {
	if req.ServerSeed == "" {
		return apperror.ErrValidation("server seed must not be empty")
	}
	if req.ClientSeed == "" {
		return apperror.ErrValidation("client seed must not be empty")
	}
	if req.Nonce < 0 {
		return apperror.ErrValidation("nonce must not be negative")
	}
	if req.Cursor < 0 {
		return apperror.ErrValidation("cursor must not be negative")
	}
	if !req.GameType.Known() {
		return apperror.ErrUnknownGame(string(req.GameType))
	}
	return nil
}

// singleDraw derives one roll in [0, 1) and applies the game transform.
func (s *FairnessServiceImpl) singleDraw(req ports.OutcomeRequest, transform func(float64) float64) (*domain.Outcome, error) {
	digest := s.digest(req.ServerSeed, req.ClientSeed, req.Nonce, string(req.GameType))
	value := rollFromBytes(digest[:drawBytes])

	return &domain.Outcome{
		GameType: req.GameType,
		Value:    transform(value),
		Digest:   hex.EncodeToString(digest),
		Nonce:    req.Nonce,
		Cursor:   req.Cursor,
	}, nil
}

// crashMultiplier rejects the lowest edge-fraction of the range (instant
// crash at 1.00), rescales the remainder back onto [0, 1), and inverts. This
// yields the closed form P(multiplier >= m) = (1 - edge) / m with no
// artificial minimum beyond the documented edge term.
func (s *FairnessServiceImpl) crashMultiplier(v, edge float64) float64 {
	if v < edge {
		return 1.0
	}
	adjusted := (v - edge) / (1 - edge)
	m := 1 / (1 - adjusted)
	if m > s.cfg.CrashMaxMultiplier {
		m = s.cfg.CrashMaxMultiplier
	}
	// Truncate toward the operator.
	m = math.Floor(m*crashScale) / crashScale
	if m < 1.0 {
		m = 1.0
	}
	return m
}

// mines collects distinct cell indices through successive non-overlapping
// 4-byte draws. Each 32-bit draw is mapped onto the grid with rejection
// sampling so the selection is exactly uniform; draws in the biased remainder
// of the integer range are discarded.
func (s *FairnessServiceImpl) mines(req ports.OutcomeRequest) (*domain.Outcome, error) {
	grid := s.cfg.MinesGridSize
	if grid <= 1 {
		return nil, apperror.ErrFairnessConfiguration(fmt.Sprintf("mines grid size %d too small", grid))
	}
	count := req.MineCount
	if count == 0 {
		count = defaultMineCount
	}
	if count < 1 || count >= grid {
		return nil, apperror.ErrValidation(fmt.Sprintf("mine count must be in [1, %d]", grid-1))
	}

	// Largest multiple of grid representable in 32 bits; draws at or above it
	// would bias the low cells and are rejected.
	rejectionBound := (uint64(1) << 32) / uint64(grid) * uint64(grid)

	cursor := req.Cursor
	digest := s.digest(req.ServerSeed, req.ClientSeed, req.Nonce, fmt.Sprintf("%d", cursor))
	firstDigest := hex.EncodeToString(digest)
	offset := 0

	chosen := make(map[int]bool, count)
	cells := make([]int, 0, count)
	iterations := 0

	for len(cells) < count {
		iterations++
		if iterations > s.cfg.MaxDrawIterations {
			// A biased or truncated result is never returned in its place.
			return nil, apperror.ErrFairnessConfiguration(fmt.Sprintf(
				"mines draw exceeded %d iterations for %d cells on a %d-cell grid",
				s.cfg.MaxDrawIterations, count, grid))
		}

		if offset+drawBytes > len(digest) {
			cursor++
			digest = s.digest(req.ServerSeed, req.ClientSeed, req.Nonce, fmt.Sprintf("%d", cursor))
			offset = 0
		}
		draw := uint64(binary.BigEndian.Uint32(digest[offset : offset+drawBytes]))
		offset += drawBytes

		if draw >= rejectionBound {
			continue
		}
		cell := int(draw % uint64(grid))
		if chosen[cell] {
			continue
		}
		chosen[cell] = true
		cells = append(cells, cell)
	}

	return &domain.Outcome{
		GameType: req.GameType,
		Cells:    cells,
		Digest:   firstDigest,
		Nonce:    req.Nonce,
		Cursor:   cursor,
	}, nil
}

// plinko walks a ball down the peg rows: one draw per row, stepping left
// when the draw falls under the bias. The landing bucket is the number of
// left steps, paid out from the row's multiplier table.
func (s *FairnessServiceImpl) plinko(req ports.OutcomeRequest) (*domain.Outcome, error) {
	rows := req.Rows
	if rows == 0 {
		rows = defaultPlinkoRows
	}
	multipliers, ok := plinkoMultipliers[rows]
	if !ok {
		return nil, apperror.ErrValidation(fmt.Sprintf("plinko rows %d has no multiplier table", rows))
	}

	cursor := req.Cursor
	digest := s.digest(req.ServerSeed, req.ClientSeed, req.Nonce, fmt.Sprintf("%d", cursor))
	firstDigest := hex.EncodeToString(digest)
	offset := 0

	bucket := 0
	for row := 0; row < rows; row++ {
		if offset+drawBytes > len(digest) {
			cursor++
			digest = s.digest(req.ServerSeed, req.ClientSeed, req.Nonce, fmt.Sprintf("%d", cursor))
			offset = 0
		}
		if rollFromBytes(digest[offset:offset+drawBytes]) < plinkoLeftBias {
			bucket++
		}
		offset += drawBytes
	}

	return &domain.Outcome{
		GameType: req.GameType,
		Value:    multipliers[bucket],
		Cells:    []int{bucket},
		Digest:   firstDigest,
		Nonce:    req.Nonce,
		Cursor:   cursor,
	}, nil
}

/// digest computes HMAC-SHA512 over "clientSeed:nonce:tail" keyed by the
// server seed.
func (s *FairnessServiceImpl) digest(serverSeed, clientSeed string, nonce int64, tail string) []byte {
	mac := hmac.New(sha512.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s:%d:%s", clientSeed, nonce, tail)
	return mac.Sum(nil)
}

// rollFromBytes normalizes 4 digest bytes to [0, 1) via the weighted
// expansion b0/256 + b1/256^2 + b2/256^3 + b3/256^4. Unlike an
// integer/max-integer division this can never reach exactly 1.0, which the
// crash transform relies on when dividing by (1 - value).
func rollFromBytes(b []byte) float64 {
	return float64(b[0])/256 +
		float64(b[1])/(256*256) +
		float64(b[2])/(256*256*256) +
		float64(b[3])/(256*256*256*256)
}

func equalCells(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
