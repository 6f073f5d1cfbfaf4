package config

import (
	"github.com/freundlier/intake/pkg/service/crisis"
	"github.com/freundlier/intake/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Crisis holds CLI flags for the crisis keyword lexicon
type Crisis struct {
	keywordFile string
}

// Flags returns CLI flags for crisis detection configuration
func (c *Crisis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "crisis-keyword-file",
			Usage:       "TOML file with a `keywords` array overriding the built-in crisis lexicon",
			Sources:     cli.EnvVars("FREUNDLIER_CRISIS_KEYWORD_FILE"),
			Destination: &c.keywordFile,
		},
	}
}

// Configure loads the keyword lexicon, falling back to the built-in list
// when no file is configured
func (c *Crisis) Configure() (*crisis.KeywordSet, error) {
	if c.keywordFile == "" {
		return crisis.DefaultKeywords(), nil
	}

	ks, err := crisis.LoadKeywordSet(c.keywordFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load crisis keyword file", goerr.V("path", c.keywordFile))
	}

	logging.Default().Info("Loaded crisis keyword lexicon",
		"path", c.keywordFile,
		"keywords", len(ks.Keywords()),
	)
	return ks, nil
}
