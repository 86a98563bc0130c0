package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifierClassify(t *testing.T) {
	regions := []*Region{
		{Start: 0x1000, End: 0x2000, Type: Heap},
		{Start: 0x4000, End: 0x5000, Type: Stack},
		{Start: 0x8000, End: 0x9000, Type: Exe, Filename: "/usr/bin/target"},
	}
	c := NewClassifier(regions)

	assert.Equal(t, "heap", c.Classify(0x1500))
	assert.Equal(t, "stack", c.Classify(0x4000))
	assert.Equal(t, "exe:/usr/bin/target", c.Classify(0x8fff))
	assert.Equal(t, "unk", c.Classify(0x3000))
	assert.Equal(t, "unk", c.Classify(0x9000)) // End is exclusive
}

func TestClassifierTruncatesLongFilenames(t *testing.T) {
	long := "/a/very/long/path/to/some/shared/library.so"
	regions := []*Region{{Start: 0x1000, End: 0x2000, Type: Code, Filename: long}}
	c := NewClassifier(regions)
	label := c.Classify(0x1500)
	assert.Contains(t, label, "...")
	assert.LessOrEqual(t, len(label), len("code:")+maxClassifyFilename)
}
