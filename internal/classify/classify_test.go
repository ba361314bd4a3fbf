package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"filesort/internal/classify"
)

func TestDefaultClassification(t *testing.T) {
	c := classify.Default()
	tests := []struct {
		ext  string
		want string
	}{
		{".jpg", "Images"},
		{".JPEG", "Images"},
		{"png", "Images"},
		{".txt", "Documents"},
		{".csv", "Documents"},
		{".mp3", "Music"},
		{".mkv", "Videos"},
		{".gz", "Archives"},
		{".sh", "Scripts"},
		{".xyz", classify.Others},
		{"", classify.Others},
		{".", classify.Others},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Classify(tc.ext), "ext %q", tc.ext)
	}
}

func TestClassifyName(t *testing.T) {
	c := classify.Default()
	assert.Equal(t, classify.Others, c.ClassifyName("data.xyz"))
	assert.Equal(t, "Images", c.ClassifyName("/tmp/Holiday.PNG"))
	assert.Equal(t, classify.Others, c.ClassifyName("Makefile"))
	assert.Equal(t, classify.Others, c.ClassifyName(".bashrc"))
	assert.Equal(t, classify.Others, c.ClassifyName("..txt"))
	assert.Equal(t, "Archives", c.ClassifyName("backup.tar.gz"))
}

func TestInjectedTable(t *testing.T) {
	table := map[string][]string{
		"Raw":    {".CR2", "nef"},
		"Photos": {".jpg", ".cr2"},
	}
	c := classify.New(table)

	assert.Equal(t, "Photos", c.Classify(".cr2"), "alphabetically first category wins")
	assert.Equal(t, "Raw", c.Classify(".nef"))
	assert.Equal(t, classify.Others, c.Classify(".png"))
	assert.Equal(t, []string{"Photos", "Raw"}, c.Categories())
	assert.Equal(t, []string{".cr2", ".jpg"}, c.Extensions("Photos"))

	table["Raw"][1] = ".png"
	assert.Equal(t, classify.Others, c.Classify(".png"), "classifier must not alias the input table")
}

func TestNilClassifier(t *testing.T) {
	var c *classify.Classifier
	assert.Equal(t, classify.Others, c.Classify(".jpg"))
	assert.Nil(t, c.Categories())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".txt", classify.Extension("A.TXT"))
	assert.Equal(t, "", classify.Extension("README"))
	assert.Equal(t, "", classify.Extension(".env"))
	assert.Equal(t, ".gz", classify.Extension("x.tar.gz"))
	assert.Equal(t, "", classify.Extension("..txt"))
	assert.Equal(t, ".txt", classify.Extension("..notes.txt"))
}
