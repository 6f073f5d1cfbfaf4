package crisis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/freundlier/intake/pkg/service/crisis"
	"github.com/m-mizutani/gt"
)

func TestNewKeywordSet(t *testing.T) {
	t.Run("empty list is rejected", func(t *testing.T) {
		_, err := crisis.NewKeywordSet(nil)
		gt.Value(t, err == nil).Equal(false)

		_, err = crisis.NewKeywordSet([]string{"", "  "})
		gt.Value(t, err == nil).Equal(false)
	})

	t.Run("regex metacharacters are quoted", func(t *testing.T) {
		ks, err := crisis.NewKeywordSet([]string{"a.b"})
		gt.NoError(t, err).Required()
		gt.Bool(t, ks.Match("said a.b today")).True()
		gt.Bool(t, ks.Match("said aXb today")).False()
	})

	t.Run("multi word keyword matches as phrase", func(t *testing.T) {
		ks, err := crisis.NewKeywordSet([]string{"jaan dena"})
		gt.NoError(t, err).Required()
		gt.Bool(t, ks.Match("mujhe jaan dena hai")).True()
		gt.Bool(t, ks.Match("mujhe jaan hai")).False()
	})
}

func TestLoadKeywordSet(t *testing.T) {
	t.Run("loads TOML lexicon", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keywords.toml")
		content := `keywords = ["despair", "khatam"]`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

		ks, err := crisis.LoadKeywordSet(path)
		gt.NoError(t, err).Required()
		gt.Array(t, ks.Keywords()).Length(2)
		gt.Bool(t, ks.Match("filled with despair tonight")).True()
		gt.Bool(t, ks.Match("sab khatam ho gaya")).True()
		gt.Bool(t, ks.Match("I want to die")).False()
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := crisis.LoadKeywordSet(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Value(t, err == nil).Equal(false)
	})

	t.Run("malformed TOML errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.toml")
		gt.NoError(t, os.WriteFile(path, []byte("keywords = not-a-list"), 0644)).Required()

		_, err := crisis.LoadKeywordSet(path)
		gt.Value(t, err == nil).Equal(false)
	})
}
