package cli

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/sirupsen/logrus"
	"tlog.app/go/errors"
)

type (
	// Config is the shell configuration.
	// It's read from a toml file:
	//
	//	degree = 3
	//	log_level = "debug"
	//	seed = true
	//	records = 100
	//	color = false
	Config struct {
		Degree   int
		LogLevel string
		Seed     bool
		Records  int
		Color    bool

		// Interactive prints the help and the prompt.
		Interactive bool
	}
)

var ErrConfig = errors.New("bad config")

func DefaultConfig() Config {
	return Config{
		Degree:   3,
		LogLevel: "info",
		Records:  1000,
		Color:    true,
	}
}

// LoadConfig reads the file at path over the defaults.
func LoadConfig(path string) (c Config, err error) {
	c = DefaultConfig()

	tr, err := toml.LoadFile(path)
	if err != nil {
		return c, errors.Wrap(err, "load %v", path)
	}

	err = c.apply(tr)
	if err != nil {
		return c, errors.Wrap(err, "%v", path)
	}

	return c, c.Validate()
}

// ParseConfig is LoadConfig for in-memory data.
func ParseConfig(data []byte) (c Config, err error) {
	c = DefaultConfig()

	tr, err := toml.LoadBytes(data)
	if err != nil {
		return c, errors.Wrap(err, "parse")
	}

	err = c.apply(tr)
	if err != nil {
		return c, err
	}

	return c, c.Validate()
}

func (c *Config) apply(tr *toml.Tree) error {
	for _, k := range tr.Keys() {
		v := tr.Get(k)

		var ok bool

		switch k {
		case "degree":
			var x int64
			x, ok = v.(int64)
			c.Degree = int(x)
		case "log_level":
			c.LogLevel, ok = v.(string)
		case "seed":
			c.Seed, ok = v.(bool)
		case "records":
			var x int64
			x, ok = v.(int64)
			c.Records = int(x)
		case "color":
			c.Color, ok = v.(bool)
		default:
			return errors.Wrap(ErrConfig, "unknown key %q", k)
		}

		if !ok {
			return errors.Wrap(ErrConfig, "key %q: unexpected type %T", k, v)
		}
	}

	return nil
}

func (c Config) Validate() error {
	if c.Degree < 2 {
		return errors.Wrap(ErrConfig, "degree %d (want >= 2)", c.Degree)
	}

	if c.Records < 0 {
		return errors.Wrap(ErrConfig, "records %d", c.Records)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrConfig, "log level %q", c.LogLevel)
	}

	return nil
}

// Logger creates a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*logrus.Logger, error) {
	lv, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrap(ErrConfig, "log level %q", c.LogLevel)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lv)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !c.Color,
		DisableTimestamp: true,
	})

	return l, nil
}
