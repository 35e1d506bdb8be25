package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "algebra-basics", Slugify("Algebra Basics"))
	assert.Equal(t, "intro-to-go-2026", Slugify("Intro to Go (2026)!"))
	assert.Equal(t, "a-b", Slugify("--A  &  B--"))
}
