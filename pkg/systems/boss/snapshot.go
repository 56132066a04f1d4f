package boss

import (
	"fmt"
	"math/rand"

	"github.com/decker502/invaders/pkg/config"
	"github.com/decker502/invaders/pkg/types"
)

// Snapshot Boss 的完整可序列化状态
// 只有与 Type 对应的变体字段非空
type Snapshot struct {
	Type          types.BossType      `msgpack:"type"`
	Base          Base                `msgpack:"base"`
	TurretUFO     *TurretUFOState     `msgpack:"turretUFO,omitempty"`
	AlienOverlord *AlienOverlordState `msgpack:"alienOverlord,omitempty"`
	RubiksCube    *RubiksCubeState    `msgpack:"rubiksCube,omitempty"`
	BulletHell    *BulletHellState    `msgpack:"bulletHell,omitempty"`
	AsteroidField *AsteroidFieldState `msgpack:"asteroidField,omitempty"`
}

// Restore 从快照重建 Boss
// 配置参数（速度、冷却等）取自 cfg，状态字段取自快照
func Restore(s *Snapshot, cfg *config.CombatConfig, rng *rand.Rand) (Boss, error) {
	if s == nil {
		return nil, fmt.Errorf("boss snapshot is nil")
	}
	now := s.Base.LastUpdate

	switch s.Type {
	case types.BossTurretUFO:
		if s.TurretUFO == nil {
			return nil, fmt.Errorf("boss snapshot %v: missing turret state", s.Type)
		}
		b := NewTurretUFO(s.Base.EncounterIndex, now, cfg, rng)
		b.base = s.Base
		b.state = *s.TurretUFO
		return b, nil

	case types.BossAlienOverlord:
		if s.AlienOverlord == nil {
			return nil, fmt.Errorf("boss snapshot %v: missing hand state", s.Type)
		}
		b := NewAlienOverlord(s.Base.EncounterIndex, now, cfg, rng)
		b.base = s.Base
		b.state = *s.AlienOverlord
		return b, nil

	case types.BossRubiksCube:
		if s.RubiksCube == nil {
			return nil, fmt.Errorf("boss snapshot %v: missing cube state", s.Type)
		}
		grid := cfg.Bosses.RubiksCube.GridSize
		if len(s.RubiksCube.Squares) != grid {
			return nil, fmt.Errorf("boss snapshot %v: grid has %d rows, config expects %d", s.Type, len(s.RubiksCube.Squares), grid)
		}
		for row, squares := range s.RubiksCube.Squares {
			if len(squares) != grid {
				return nil, fmt.Errorf("boss snapshot %v: row %d has %d squares, config expects %d", s.Type, row, len(squares), grid)
			}
		}
		b := NewRubiksCube(s.Base.EncounterIndex, now, cfg, rng)
		b.base = s.Base
		b.state = *s.RubiksCube
		b.state.Squares = copySquares(s.RubiksCube.Squares)
		return b, nil

	case types.BossBulletHell:
		if s.BulletHell == nil {
			return nil, fmt.Errorf("boss snapshot %v: missing wander state", s.Type)
		}
		b := NewBulletHell(s.Base.EncounterIndex, now, cfg, rng)
		b.base = s.Base
		b.state = *s.BulletHell
		return b, nil

	case types.BossAsteroidField:
		if s.AsteroidField == nil {
			return nil, fmt.Errorf("boss snapshot %v: missing asteroid state", s.Type)
		}
		b := NewAsteroidField(s.Base.EncounterIndex, now, cfg, rng)
		b.base = s.Base
		b.state = *s.AsteroidField
		b.state.Asteroids = append([]Asteroid(nil), s.AsteroidField.Asteroids...)
		return b, nil

	default:
		return nil, fmt.Errorf("unknown boss type in snapshot: %v", s.Type)
	}
}
