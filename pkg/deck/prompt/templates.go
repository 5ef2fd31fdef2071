package prompt

// Instruction templates for each generation stage. Every template that feeds
// the text model also demands a machine-parseable JSON block so the response
// can be turned back into structured pages.

const outlineJSONShape = "```json\n" + `{
    "pages": [
        {
            "page": 1,
            "theme": "page theme",
            "title": "page title",
            "content": "core points (may span multiple lines)"
        }
    ]
}` + "\n```"

const styleJSONShape = "```json\n" + `{
    "pages": [
        {
            "page": 1,
            "theme": "page theme",
            "design_concept": "design rationale",
            "prompt": "detailed image-generation prompt covering every visual element, color, layout and text"
        }
    ]
}` + "\n```"

const outlineExample = `Page 1: Core strategy overview
Page title: 2026 core strategy: contain risk + trade more
Core points:
Keyword one: contain risk
	Goal: guard against tail risk.
	Measures: iterate the risk system (shift from pure return attribution to risk monitoring).
Keyword two: trade more
	Goal: capture absolute returns.
	Measures: build systematic trading signals and strategies.

Page 2: Why contain risk? (background and logic)
Page title: Market read: tail risk emerging
Core points (three reasons):
Macro narrative in doubt: the consensus macro trend is crowded and may be falsified.
Valuations elevated: assets have rallied for a long stretch and sit at highs.
Correlations rising: cross-asset correlation is up sharply, making diversification harder.
Conclusion: prepare for volatility expanding across assets at once.`

const stylePromptExamples = `Reference prompt 1: "Presentation slide design, professional business style. Pure white background, title text '2026 Core Strategy Overview' at 18pt in the primary color (%[1]s). The central visual is a flat-style balance scale; its pivot uses the primary color (%[1]s). Left pan: slightly lower, decorated with a shield icon outlined in the accent color (%[3]s), labeled 'Risk Prevention' with keywords 'stable base, drawdown control', and a bold accent-colored down arrow underneath. Right pan: slightly higher, decorated with secondary-colored (%[2]s) stacked coins and a rising-trend arrow, labeled 'More Trading' with keywords 'enhanced returns, flexible response', and a bold secondary-colored up arrow underneath. Clean, digital overall look with clear information hierarchy."

Reference prompt 2: "Presentation slide design, professional business style. Pure white background, title 'White-box Fixed Income Plus' at 18pt in the primary color (%[1]s). The visual center is a large inverted pyramid (funnel) split top-down into three horizontal bands: top (widest) in the primary color (%[1]s) with white text; middle in the secondary color (%[2]s) with white text; bottom (narrowest) in the text gray (%[4]s) with white text. Crisp layered layout, premium corporate palette, tidy composition."`
