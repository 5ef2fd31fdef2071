package xfyun

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Segment is one speaker turn recovered from the transcription lattice.
type Segment struct {
	Speaker string
	Text    string
	BeginMs int
}

// Lattice wire shapes. The order result embeds JSON strings inside JSON,
// so parsing happens in two steps.
type orderResult struct {
	Lattice  []latticeItem `json:"lattice"`
	Lattice2 []latticeItem `json:"lattice2"`
}

type latticeItem struct {
	JSON1Best string `json:"json_1best"`
}

type oneBest struct {
	ST struct {
		RL string          `json:"rl"`
		BG string          `json:"bg"`
		RT []struct {
			WS []struct {
				CW []struct {
					W string `json:"w"`
				} `json:"cw"`
			} `json:"ws"`
		} `json:"rt"`
	} `json:"st"`
}

func parseOrderResult(content *resultContent) ([]Segment, error) {
	if content.OrderResult == "" {
		return nil, fmt.Errorf("xfyun returned an empty transcription")
	}

	var result orderResult
	if err := json.Unmarshal([]byte(content.OrderResult), &result); err != nil {
		return nil, fmt.Errorf("xfyun orderResult: %w", err)
	}

	lattices := result.Lattice
	if len(lattices) == 0 {
		lattices = result.Lattice2
	}

	segments := make([]Segment, 0, len(lattices))
	for _, item := range lattices {
		var best oneBest
		if err := json.Unmarshal([]byte(item.JSON1Best), &best); err != nil {
			continue
		}

		var text strings.Builder
		for _, rt := range best.ST.RT {
			for _, ws := range rt.WS {
				for _, cw := range ws.CW {
					text.WriteString(cw.W)
				}
			}
		}

		speaker := best.ST.RL
		if speaker == "" {
			speaker = "0"
		}

		beginMs := 0
		fmt.Sscanf(best.ST.BG, "%d", &beginMs)

		segments = append(segments, Segment{
			Speaker: "Speaker " + speaker,
			Text:    text.String(),
			BeginMs: beginMs,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].BeginMs < segments[j].BeginMs
	})
	return segments, nil
}

// FormatDialogue renders segments as "Speaker N: text" lines.
func FormatDialogue(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Speaker, s.Text))
	}
	return strings.Join(lines, "\n")
}
