package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	empties := []string{"", Empty, "<p> </p>", "<p></p><p></p>", "<p><br></p>", "<p>&nbsp;</p>", "\n"}
	for _, markup := range empties {
		assert.True(t, IsEmpty(markup), "%q should be empty", markup)
	}

	assert.False(t, IsEmpty("<p>hi</p>"))
	assert.False(t, IsEmpty("<p></p><p><strong>x</strong></p>"))
}

func TestFromTextToTextRoundTrip(t *testing.T) {
	t.Parallel()

	text := "Dear diary,\n\nToday <b> & \"quotes\" happened."
	markup := FromText(text)
	assert.Equal(t, "<p>Dear diary,</p><p></p><p>Today &lt;b&gt; &amp; &#34;quotes&#34; happened.</p>", markup)
	assert.Equal(t, text, ToText(markup))
}

func TestFromText_EmptyIsSentinel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Empty, FromText(""))
	assert.True(t, IsEmpty(FromText("")))
}

func TestToText_ForeignMarkup(t *testing.T) {
	t.Parallel()

	markup := `<p>First <strong>bold</strong> line<br>continued</p><ul><li>ignored list</li></ul><p class="x">Second</p>`
	assert.Equal(t, "First bold line\ncontinued\nSecond", ToText(markup))
	assert.Equal(t, "plain", ToText("plain"))
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, WordCount(Empty))
	assert.Equal(t, 4, WordCount("<p>one two</p><p>three <em>four</em></p>"))
}
