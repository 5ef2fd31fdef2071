package constant

import "time"

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// ContextKeyInviteCode is the request-context key the JWT middleware stores
// the caller's invite code under. Fiber locals back onto the fasthttp
// request context, so services can read it with ctx.Value.
const ContextKeyInviteCode = "invite_code"

// Retry policy for all generation calls. Process-wide, not per-request.
const (
	GenerationMaxRetries = 3
	GenerationRetryDelay = 5 * time.Second

	TextGenerationTimeout  = 120 * time.Second
	ImageGenerationTimeout = 180 * time.Second
)

// Support document extraction is capped so a single upload cannot dominate
// the outline prompt.
const (
	SupportDocTextLimit = 10000
	TableTextLimit      = 3000
)

// Page-number placement options accepted in template settings.
const (
	PageNumberNone         = "none"
	PageNumberBottomLeft   = "bottom-left"
	PageNumberBottomRight  = "bottom-right"
	PageNumberBottomCenter = "bottom-center" // default
)

// DefaultDesignPrinciples is applied to every new session until the user
// overrides it.
const DefaultDesignPrinciples = `- Overall style: clean business look, professional finance aesthetic, white background
- Copy first: drop decorative English filler, keep wording concise
- Avoid overly intricate graphics (e.g. balance scales); prefer SmartArt-like boxes and lists while keeping information dense
- Use red sparingly, only for risk warnings
- No large solid color blocks
- Background stays white`

// DefaultColorSchemeSpec describes the built-in palette used when the user
// supplies no custom color scheme.
const DefaultColorSchemeSpec = `- Primary colors:
  - Blue: #1C2662 - headlines, background blocks, emphasis borders
  - Gold: #DAA050 - key figures, secondary headings, chart highlights
  - Red: #BC2424 - risk warnings, special emphasis
- Secondary colors:
  - Gray: #666464 - body text, chart axes`

// DefaultFontSchemeSpec describes the built-in typography.
const DefaultFontSchemeSpec = `- CJK text: Microsoft YaHei
- Latin/digits: Arial
- Sizes: main title 48pt, page title 18pt, body 12-16pt; in-image titles 18pt, in-image body 12-16pt`

// Built-in palette values, also used as example colors inside the style
// generation prompt.
const (
	DefaultColorPrimary   = "#1C2662"
	DefaultColorSecondary = "#DAA050"
	DefaultColorAccent    = "#BC2424"
	DefaultColorGray      = "#666464"
)
