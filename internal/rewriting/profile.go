package rewriting

import (
	"github.com/jonathan/resume-rewriter/internal/highlight"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/types"
)

// Shape selects how generated or fallback text is fitted to the FormatContract.
type Shape int

const (
	// ShapeSingleLine clips to one line of at most MaxChars.
	ShapeSingleLine Shape = iota
	// ShapeLines reflows into MinLines..MaxLines lines under MaxTotalChars.
	ShapeLines
	// ShapeBullets segments into bullets, each clipped to MaxChars, BulletCount of them.
	ShapeBullets
)

func (s Shape) String() string {
	switch s {
	case ShapeSingleLine:
		return "single_line"
	case ShapeLines:
		return "lines"
	case ShapeBullets:
		return "bullets"
	default:
		return "unknown"
	}
}

// Profile is everything that differs between content types: prompts, limits, output shape,
// highlight keywords and request tuning.
type Profile struct {
	ContentType  types.ContentType
	SystemPrompt string // key in prompts.RewritingFile
	UserPrompt   string // key in prompts.RewritingFile
	Contract     types.FormatContract
	Shape        Shape
	Keywords     []string

	Tier            llm.ModelTier
	Temperature     float32
	MaxOutputTokens int32
	Stop            []string
	MaxInputChars   int // bound on the draft text sent to the model
}

func newProfile(ct types.ContentType, contract types.FormatContract, shape Shape, keywords []string) Profile {
	return Profile{
		ContentType:  ct,
		SystemPrompt: string(ct) + "-system",
		UserPrompt:   string(ct) + "-user",
		Contract:     contract,
		Shape:        shape,
		Keywords:     keywords,
	}
}

// Profiles returns the default profile of every single-request content type.
func Profiles() map[types.ContentType]Profile {
	workBullet := newProfile(types.ContentWorkBullet, types.FormatContract{MaxChars: 140}, ShapeSingleLine, highlight.WorkKeywords)
	workBullet.Tier = llm.TierLite
	workBullet.Temperature = 0.4
	workBullet.MaxOutputTokens = 256
	workBullet.Stop = []string{"\n\n"}
	workBullet.MaxInputChars = 1200

	workProfile := newProfile(types.ContentWorkProfile, types.FormatContract{MinLines: 2, MaxLines: 4, MaxTotalChars: 420}, ShapeLines, highlight.ProfileKeywords)
	workProfile.Tier = llm.TierStandard
	workProfile.Temperature = 0.5
	workProfile.MaxOutputTokens = 512
	workProfile.MaxInputChars = 2400

	consulting := newProfile(types.ContentConsultingSummary, types.FormatContract{MinLines: 2, MaxLines: 3, MaxTotalChars: 360}, ShapeLines, highlight.ConsultingKeywords)
	consulting.Tier = llm.TierAdvanced
	consulting.Temperature = 0.5
	consulting.MaxOutputTokens = 512
	consulting.MaxInputChars = 3000

	tech := newProfile(types.ContentTechSummary, types.FormatContract{MaxChars: 180}, ShapeSingleLine, highlight.TechKeywords)
	tech.Tier = llm.TierLite
	tech.Temperature = 0.3
	tech.MaxOutputTokens = 256
	tech.Stop = []string{"\n\n"}
	tech.MaxInputChars = 1500

	batch := newProfile(types.ContentBulletBatch, types.FormatContract{MaxChars: 160}, ShapeBullets, highlight.WorkKeywords)
	batch.Tier = llm.TierStandard
	batch.Temperature = 0.4
	batch.MaxOutputTokens = 1024
	batch.MaxInputChars = 4000

	return map[types.ContentType]Profile{
		workBullet.ContentType:  workBullet,
		workProfile.ContentType: workProfile,
		consulting.ContentType:  consulting,
		tech.ContentType:        tech,
		batch.ContentType:       batch,
	}
}

// StructuredProfile tunes the single round trip of a structured rewrite. Contract and Shape are
// unused; per-field caps come from the request.
func StructuredProfile() Profile {
	p := newProfile(types.ContentStructured, types.FormatContract{}, ShapeSingleLine, append(append([]string{}, highlight.ConsultingKeywords...), highlight.ProfileKeywords...))
	p.Tier = llm.TierStandard
	p.Temperature = 0.3
	p.MaxOutputTokens = 1024
	p.MaxInputChars = 1500
	return p
}
