// Package service provides the meeting identifier generator.
package service

import (
	"crypto/rand"
	"io"
	mrand "math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// maxUnbiasedByte is the largest multiple of len(alphabet) that fits in a byte.
	// Bytes at or above it are discarded so every character is equally likely.
	maxUnbiasedByte = 252

	groupLength = 4
	randomChars = 3 * groupLength
	timeModulus = 1_000_000

	// maxReadRounds bounds how many buffers are read before falling back to math/rand/v2.
	maxReadRounds = 8
)

var meetingIDRegex = regexp.MustCompile(`^[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}$`)

// IDGenerator produces meeting identifiers.
type IDGenerator interface {
	// Generate returns a new identifier. It never fails.
	Generate() string
}

// Option configures the generator.
type Option func(*idGenerator)

// WithClock replaces the wall clock used for the time component.
func WithClock(now func() time.Time) Option {
	return func(g *idGenerator) {
		g.now = now
	}
}

// WithRandomSource replaces crypto/rand as the source of random bytes.
func WithRandomSource(r io.Reader) Option {
	return func(g *idGenerator) {
		g.random = r
	}
}

type idGenerator struct {
	now    func() time.Time
	random io.Reader
}

// NewIDGenerator creates a generator backed by crypto/rand and the wall clock.
func NewIDGenerator(opts ...Option) IDGenerator {
	g := &idGenerator{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds an id from the low digits of the current millisecond and twelve
// random characters:
//
//	time[0:4] - rand[0:4] - rand[4:6]+time[4:6] - rand[8:12]
//
// The time part is the epoch millisecond modulo 1,000,000 in hex, zero padded to six.
func (g *idGenerator) Generate() string {
	millis := g.now().UnixMilli() % timeModulus
	if millis < 0 {
		millis += timeModulus
	}
	timePart := leftPad(strconv.FormatInt(millis, 16), 6)
	random := g.randomString(randomChars)

	var b strings.Builder
	b.Grow(19)
	b.WriteString(timePart[0:4])
	b.WriteByte('-')
	b.WriteString(random[0:4])
	b.WriteByte('-')
	b.WriteString(random[4:6])
	b.WriteString(timePart[4:6])
	b.WriteByte('-')
	b.WriteString(random[8:12])
	return b.String()
}

// randomString draws n characters from the alphabet. If the random source fails,
// or keeps producing only discarded bytes, the remaining characters come from
// math/rand/v2.
func (g *idGenerator) randomString(n int) string {
	out := make([]byte, 0, n)
	buf := make([]byte, n+n/2)

	for round := 0; len(out) < n && round < maxReadRounds; round++ {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			break
		}
		for _, c := range buf {
			if c >= maxUnbiasedByte {
				continue
			}
			out = append(out, alphabet[int(c)%len(alphabet)])
			if len(out) == n {
				break
			}
		}
	}
	for len(out) < n {
		out = append(out, alphabet[mrand.IntN(len(alphabet))])
	}
	return string(out)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// ValidMeetingID reports whether id has the xxxx-xxxx-xxxx-xxxx format over [a-z0-9].
func ValidMeetingID(id string) bool {
	return meetingIDRegex.MatchString(id)
}
