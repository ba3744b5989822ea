package app

import (
	"flag"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"lavahop/internal/arena"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set validates and appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Config captures the command-line options shared by the frontends.
type Config struct {
	Seed      int64
	Blue      string
	Red       string
	TPS       int
	Scale     int
	HUDWidth  int
	Overrides KVList

	LogLevel string
	Debug    bool
	LogDir   string

	Spectate     string
	PublishEvery int
	Sound        bool
}

// NewConfig returns the default frontend options.
func NewConfig() Config {
	def := arena.DefaultConfig()
	return Config{
		Seed:         def.Seed,
		Blue:         def.Blue.String(),
		Red:          def.Red.String(),
		TPS:          60,
		Scale:        48,
		HUDWidth:     220,
		LogLevel:     "info",
		LogDir:       "logs",
		PublishEvery: 6,
	}
}

// Bind registers the options on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "arena seed")
	fs.StringVar(&c.Blue, "blue", c.Blue, "blue controller: human or ai")
	fs.StringVar(&c.Red, "red", c.Red, "red controller: human or ai")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per arena cell (GUI)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (GUI, 0 hides it)")
	fs.Var(&c.Overrides, "set", "arena parameter override in key=value form (repeatable)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write debug logs to the log directory")
	fs.StringVar(&c.LogDir, "log-dir", c.LogDir, "log directory used with -debug")
	fs.StringVar(&c.Spectate, "spectate", c.Spectate, "serve the spectator feed on this address (e.g. :8080)")
	fs.IntVar(&c.PublishEvery, "publish-every", c.PublishEvery, "ticks between spectator snapshots")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play sound cues")
}

// Arena resolves the options into an arena configuration. Overrides win over
// the dedicated flags.
func (c Config) Arena() (arena.Config, error) {
	values := map[string]string{
		"seed": strconv.FormatInt(c.Seed, 10),
		"blue": c.Blue,
		"red":  c.Red,
	}
	for _, team := range []string{"blue", "red"} {
		if _, ok := arena.ParseController(values[team]); !ok {
			return arena.Config{}, fmt.Errorf("invalid %s controller %q", team, values[team])
		}
	}
	for _, kv := range c.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return arena.Config{}, fmt.Errorf("invalid override %q", kv)
		}
		key = strings.TrimSpace(key)
		if !slices.Contains(arena.ConfigKeys, key) {
			return arena.Config{}, fmt.Errorf("unknown parameter %q", key)
		}
		values[key] = strings.TrimSpace(value)
	}
	return arena.FromMap(values), nil
}
