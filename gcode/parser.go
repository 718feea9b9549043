package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Parse reads an entire program into blocks, one per instruction line
// that carries words.
func Parse(data string) ([]Block, error) {
	p := NewParser(strings.NewReader(data))
	var blocks []Block
	for {
		b, err := p.Read()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
}

// Parser reads generated programs back into Blocks, one per line.
// Comments, blank separator lines and the `$H` homing request carry no
// words and are skipped.
type Parser struct{ br *bufio.Reader }

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReader(r)}
}

var (
	rx      = regexp.MustCompile(`^([A-Z][0-9.\-]+)+$`)
	rxSplit = regexp.MustCompile(`[A-Z][0-9.\-]+`)
)

func (p *Parser) Read() (ln Block, err error) {
	for {
		s, err := p.br.ReadString('\n')
		if err == io.EOF && s != "" {
			err = nil
		}
		if err != nil {
			return nil, err
		}

		s = strings.SplitN(s, ";", 2)[0]
		s = strings.Replace(s, " ", "", -1)
		s = strings.TrimSpace(s)
		s = strings.ToUpper(s)

		if s == "" || s == "$H" {
			continue
		}

		if !rx.MatchString(s) {
			return nil, errors.New("invalid or unhandled line: " + s)
		}

		codes := rxSplit.FindAllString(s, -1)
		res := make(Block, len(codes))

		for i, c := range codes {
			_, err = fmt.Sscanf(c, "%c%f", &res[i].W, &res[i].Arg)
			if err != nil {
				return nil, err
			}
		}

		return res, nil
	}
}
