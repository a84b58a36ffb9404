package domain

// GameType identifies the per-game transform applied to the raw draw.
type GameType string

const (
	GameDice   GameType = "DICE"
	GameCrash  GameType = "CRASH"
	GameMines  GameType = "MINES"
	GameWheel  GameType = "WHEEL"
	GamePlinko GameType = "PLINKO"
)

// Known reports whether the game type has a registered transform.
func (g GameType) Known() bool {
	switch g {
	case GameDice, GameCrash, GameMines, GameWheel, GamePlinko:
		return true
	}
	return false
}

// Outcome is a fully reproducible game result: recomputing with identical
// seed material yields an identical digest and value, always.
type Outcome struct {
	GameType GameType `json:"game_type"`
	Value    float64  `json:"value"`
	Cells    []int    `json:"cells,omitempty"` // MINES mine cells; PLINKO landing bucket
	Digest   string   `json:"digest"`
	Nonce    int64    `json:"nonce"`
	Cursor   int      `json:"cursor"`
}
