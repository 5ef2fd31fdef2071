package docextract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Word and PowerPoint files are OOXML zip containers. Text lives in <w:t>
// (docx) and <a:t> (pptx) elements; pulling those out is enough for source
// material, layout is irrelevant here.

func extractDocx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			text, err := collectElementText(f, "t", "p")
			if err != nil {
				return "", err
			}
			return text, nil
		}
	}
	return "", fmt.Errorf("docx has no word/document.xml")
}

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func extractPptx(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open pptx: %w", err)
	}
	defer r.Close()

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	for _, f := range r.File {
		if m := slideNameRe.FindStringSubmatch(f.Name); m != nil {
			num, _ := strconv.Atoi(m[1])
			slides = append(slides, slide{num: num, file: f})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var parts []string
	for _, s := range slides {
		text, err := collectElementText(s.file, "t", "p")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Slide %d]\n%s", s.num, text))
	}
	return strings.Join(parts, "\n\n"), nil
}

// collectElementText streams an XML file, gathering character data inside
// elements with local name textEl and inserting a newline after each
// paragraph element (local name paraEl).
func collectElementText(f *zip.File, textEl, paraEl string) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var b strings.Builder
	inText := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", f.Name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == textEl {
				inText = true
			}
		case xml.EndElement:
			if t.Name.Local == textEl {
				inText = false
			}
			if t.Name.Local == paraEl {
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
