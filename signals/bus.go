package signals

import "github.com/eringen/opengraph/content"

// Bus holds the signals a generation pass emits.
type Bus struct {
	// ArticleGeneratorFinalized fires once per pass, after every article and
	// draft is built and before anything is rendered.
	ArticleGeneratorFinalized *Signal[content.Generator]
}

// NewBus returns a Bus with no receivers connected.
func NewBus() *Bus {
	return &Bus{
		ArticleGeneratorFinalized: New[content.Generator]("article_generator_finalized"),
	}
}
