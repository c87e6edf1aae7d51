//go:build ci

package sound

// Effect names; see sound.go.
const (
	EffectDeal     = "deal"
	EffectPlay     = "play"
	EffectPass     = "pass"
	EffectTrickWon = "trick_won"
	EffectRoundEnd = "round_end"
	EffectYourTurn = "your_turn"
	EffectWin      = "win"
	EffectLose     = "lose"
)

type SoundManager struct{}

func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(name string) {}

func (sm *SoundManager) Close() {}
