// File: utils/config.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configurable game parameters.
type Config struct {
	// Timing
	GameTickPeriod  time.Duration `mapstructure:"gameTickPeriod"`  // Time between physics updates
	BroadcastPeriod time.Duration `mapstructure:"broadcastPeriod"` // Time between state broadcasts

	// Screen & edges
	ScreenWidth  float64 `mapstructure:"screenWidth"`
	ScreenHeight float64 `mapstructure:"screenHeight"`
	EdgeWidth    float64 `mapstructure:"edgeWidth"` // Thickness of the side/top walls

	// Ball physics
	BallSize              float64 `mapstructure:"ballSize"`              // Width/height of the ball rect
	BallStartAngle        float64 `mapstructure:"ballStartAngle"`        // Radians, 0 = +x, clockwise
	BallBaseSpeed         float64 `mapstructure:"ballBaseSpeed"`         // Pixels per frame the ball settles to
	BallTopSpeed          float64 `mapstructure:"ballTopSpeed"`          // Hard speed ceiling
	BallNormalisationRate float64 `mapstructure:"ballNormalisationRate"` // Per-frame speed convergence step
	BrickSpeedAdjust      float64 `mapstructure:"brickSpeedAdjust"`      // Speed gained per brick collision
	WallSpeedAdjust       float64 `mapstructure:"wallSpeedAdjust"`       // Speed gained per wall collision

	// Paddle
	PaddleWidth        float64 `mapstructure:"paddleWidth"`
	PaddleHeight       float64 `mapstructure:"paddleHeight"`
	PaddleSpeed        float64 `mapstructure:"paddleSpeed"`
	PaddleBottomOffset float64 `mapstructure:"paddleBottomOffset"` // Distance the paddle floats above the bottom
	PaddleExplodeTicks int     `mapstructure:"paddleExplodeTicks"` // Frames the exploding animation lasts
	PaddleWidenStep    float64 `mapstructure:"paddleWidenStep"`    // Pixels of width gained per frame while expanding

	// Game flow
	Lives            int     `mapstructure:"lives"`
	AutoReleaseTicks int     `mapstructure:"autoReleaseTicks"` // Frames before an anchored ball auto-releases
	BallOffTicks     int     `mapstructure:"ballOffTicks"`     // Pause after the explosion before the next serve
	PowerUpFallSpeed float64 `mapstructure:"powerUpFallSpeed"`
	PowerUpSize      float64 `mapstructure:"powerUpSize"`
	PowerUpChance    float64 `mapstructure:"powerUpChance"` // Capsule drop probability per destroyed brick
	LaserSpeed       float64 `mapstructure:"laserSpeed"`
	SlowBallDelta    float64 `mapstructure:"slowBallDelta"` // Base speed reduction while SlowBall is active

	// Server
	ListenAddr string `mapstructure:"listenAddr"`
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		GameTickPeriod:  10 * time.Millisecond,
		BroadcastPeriod: 30 * time.Millisecond,

		ScreenWidth:  600,
		ScreenHeight: 650,
		EdgeWidth:    15,

		BallSize:              14,
		BallStartAngle:        5.0,
		BallBaseSpeed:         8,
		BallTopSpeed:          15,
		BallNormalisationRate: 0.02,
		BrickSpeedAdjust:      0.5,
		WallSpeedAdjust:       0.2,

		PaddleWidth:        90,
		PaddleHeight:       16,
		PaddleSpeed:        10,
		PaddleBottomOffset: 60,
		PaddleExplodeTicks: 45,
		PaddleWidenStep:    4,

		Lives:            3,
		AutoReleaseTicks: 180,
		BallOffTicks:     90,
		PowerUpFallSpeed: 3,
		PowerUpSize:      20,
		PowerUpChance:    0.15,
		LaserSpeed:       12,
		SlowBallDelta:    3,

		ListenAddr: ":3001",
	}
}

// LoadConfig builds a Config from defaults, an optional config file and
// BREAKOID_* environment variables, in increasing order of precedence.
func LoadConfig(path string) (Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("gameTickPeriod", defaults.GameTickPeriod)
	v.SetDefault("broadcastPeriod", defaults.BroadcastPeriod)
	v.SetDefault("screenWidth", defaults.ScreenWidth)
	v.SetDefault("screenHeight", defaults.ScreenHeight)
	v.SetDefault("edgeWidth", defaults.EdgeWidth)
	v.SetDefault("ballSize", defaults.BallSize)
	v.SetDefault("ballStartAngle", defaults.BallStartAngle)
	v.SetDefault("ballBaseSpeed", defaults.BallBaseSpeed)
	v.SetDefault("ballTopSpeed", defaults.BallTopSpeed)
	v.SetDefault("ballNormalisationRate", defaults.BallNormalisationRate)
	v.SetDefault("brickSpeedAdjust", defaults.BrickSpeedAdjust)
	v.SetDefault("wallSpeedAdjust", defaults.WallSpeedAdjust)
	v.SetDefault("paddleWidth", defaults.PaddleWidth)
	v.SetDefault("paddleHeight", defaults.PaddleHeight)
	v.SetDefault("paddleSpeed", defaults.PaddleSpeed)
	v.SetDefault("paddleBottomOffset", defaults.PaddleBottomOffset)
	v.SetDefault("paddleExplodeTicks", defaults.PaddleExplodeTicks)
	v.SetDefault("paddleWidenStep", defaults.PaddleWidenStep)
	v.SetDefault("lives", defaults.Lives)
	v.SetDefault("autoReleaseTicks", defaults.AutoReleaseTicks)
	v.SetDefault("ballOffTicks", defaults.BallOffTicks)
	v.SetDefault("powerUpFallSpeed", defaults.PowerUpFallSpeed)
	v.SetDefault("powerUpSize", defaults.PowerUpSize)
	v.SetDefault("powerUpChance", defaults.PowerUpChance)
	v.SetDefault("laserSpeed", defaults.LaserSpeed)
	v.SetDefault("slowBallDelta", defaults.SlowBallDelta)
	v.SetDefault("listenAddr", defaults.ListenAddr)

	v.SetEnvPrefix("BREAKOID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return Config{}, fmt.Errorf("screen dimensions must be positive, got %gx%g",
			cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.BallTopSpeed < cfg.BallBaseSpeed {
		return Config{}, fmt.Errorf("ballTopSpeed %g is below ballBaseSpeed %g",
			cfg.BallTopSpeed, cfg.BallBaseSpeed)
	}

	return cfg, nil
}
