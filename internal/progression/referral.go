package progression

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"
)

const referralAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ReferralCodeLength is the length of generated referral codes.
const ReferralCodeLength = 6

// Friend is a peer added by accepting their referral code.
type Friend struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	LastActive time.Time `json:"lastActive"`
	BestScore  int       `json:"bestScore"`
	InvitedBy  string    `json:"invitedBy,omitempty"`
}

// GenerateReferralCode returns a random uppercase alphanumeric code.
// Collisions between players are not checked.
func GenerateReferralCode(rng *rand.Rand) string {
	var sb strings.Builder
	sb.Grow(ReferralCodeLength)
	for i := 0; i < ReferralCodeLength; i++ {
		sb.WriteByte(referralAlphabet[rng.Intn(len(referralAlphabet))])
	}
	return sb.String()
}

// NormalizeCode trims and uppercases a code typed by a player.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ShareText is the message posted when sharing a score.
func ShareText(score int) string {
	return fmt.Sprintf("I just scored %d points in Flappy Bird! Can you beat my score?", score)
}

// InviteText is the message sent along with an invite link.
func InviteText(code string) string {
	return fmt.Sprintf("Join me in Flappy Bird! Use my referral code %s and we both get bonus XP!", code)
}

// InviteLink embeds code as the ref query parameter of base.
func InviteLink(base, code string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?ref=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("ref", code)
	u.RawQuery = q.Encode()
	return u.String()
}
