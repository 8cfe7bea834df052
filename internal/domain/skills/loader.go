package skills

import (
	"fmt"

	"github.com/spf13/viper"
)

type taxonomyFile struct {
	Categories []Category `mapstructure:"categories"`
}

// LoadTaxonomy reads a taxonomy file (any format viper understands) with a
// top-level "categories" list of {name, skills}.
func LoadTaxonomy(path string) (*Taxonomy, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var f taxonomyFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode taxonomy %s: %w", path, err)
	}

	return NewTaxonomy(f.Categories)
}
