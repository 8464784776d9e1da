package service

import (
	"regexp"
	"strings"
)

// TicketRequest holds the contact details needed to open a support ticket.
type TicketRequest struct {
	Name             string
	Email            string
	IssueDescription string
}

var supportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(contact|reach|call|email)\s+(the\s+)?(support|help\s*desk|customer\s+service)`),
	regexp.MustCompile(`(?i)\b(talk|speak|chat)\s+(to|with)\s+(a\s+|an\s+|the\s+)?(human|person|agent|representative|someone|support|staff)`),
	regexp.MustCompile(`(?i)\b(customer|technical|tech)\s+(support|service)\b`),
	regexp.MustCompile(`(?i)\b(open|create|submit|file|raise)\s+(a\s+)?(support\s+)?(ticket|request)\b`),
	regexp.MustCompile(`(?i)\bsupport\s+ticket\b`),
	regexp.MustCompile(`(?i)\b(need|want|get)\s+(human\s+)?help\s+from\s+(support|a\s+human|someone)`),
	regexp.MustCompile(`(?i)\bhelp\s*desk\b`),
	regexp.MustCompile(`(?i)\bget\s+in\s+touch\b`),
	regexp.MustCompile(`(?i)liên\s+hệ\s+(bộ\s+phận\s+)?(hỗ\s+trợ|chăm\s+sóc\s+khách\s+hàng|nhân\s+viên)`),
	regexp.MustCompile(`(?i)(nói\s+chuyện|gặp|trò\s+chuyện)\s+(với\s+)?(nhân\s+viên|người\s+thật|tư\s+vấn\s+viên)`),
	regexp.MustCompile(`(?i)(tạo|gửi|mở)\s+(một\s+)?(yêu\s+cầu\s+hỗ\s+trợ|ticket|phiếu\s+hỗ\s+trợ)`),
	regexp.MustCompile(`(?i)(cần|muốn)\s+(được\s+)?hỗ\s+trợ`),
	regexp.MustCompile(`(?i)hỗ\s+trợ\s+kỹ\s+thuật`),
}

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// Only the trigger phrase is case-insensitive; some captures must start with
// an upper-case letter to avoid treating "I am having trouble" as a name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:\bmy\s+name\s+is)\s+([\p{L}'\-]+(?:\s+[\p{L}'\-]+){0,3})`),
	regexp.MustCompile(`(?i:tên\s+(?:tôi|của\s+tôi|mình)\s+là)\s+([\p{L}'\-]+(?:\s+[\p{L}'\-]+){0,3})`),
	regexp.MustCompile(`(?i:\bi\s+am|\bi'm)\s+(\p{Lu}[\p{L}'\-]*(?:\s+\p{Lu}[\p{L}'\-]*){0,3})`),
	regexp.MustCompile(`(?i:\bthis\s+is)\s+(\p{Lu}[\p{L}'\-]*(?:\s+\p{Lu}[\p{L}'\-]*){0,3})`),
	regexp.MustCompile(`(?i:(?:^|\s)(?:tôi|mình)\s+là)\s+(\p{Lu}[\p{L}'\-]*(?:\s+\p{Lu}[\p{L}'\-]*){0,3})`),
	regexp.MustCompile(`(?:^|[.!?,;:])\s*(?:(?i:hi|hello|hey|good\s+(?:morning|afternoon|evening))[\s,!]+)?(\p{Lu}[\p{L}'\-]*(?:\s+\p{Lu}[\p{L}'\-]*)?)\s+(?i:here)\b`),
}

// nameStopWords end a captured name.
var nameStopWords = map[string]bool{
	"and": true, "my": true, "email": true, "e-mail": true, "is": true,
	"at": true, "from": true, "with": true, "here": true, "i": true,
	"need": true, "want": true, "please": true, "can": true, "could": true,
	"và": true, "email:": true, "của": true, "cần": true, "muốn": true,
}

// IsSupportRequest reports whether text asks to reach support or a human.
func IsSupportRequest(text string) bool {
	for _, p := range supportPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// ExtractEmail returns the first email address in text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractName returns the first name introduced by a known phrase, or "".
func ExtractName(text string) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if name := cleanName(m[1]); name != "" {
			return name
		}
	}
	return ""
}

func cleanName(candidate string) string {
	var words []string
	for _, w := range strings.Fields(candidate) {
		if nameStopWords[strings.ToLower(w)] {
			break
		}
		words = append(words, w)
	}
	return strings.Trim(strings.Join(words, " "), "'-")
}

// DetectSupportRequest returns the contact details when text is a support
// request carrying both a name and an email, and nil otherwise.
func DetectSupportRequest(text string) *TicketRequest {
	if !IsSupportRequest(text) {
		return nil
	}
	email := ExtractEmail(text)
	if email == "" {
		return nil
	}
	name := ExtractName(text)
	if name == "" {
		return nil
	}
	return &TicketRequest{
		Name:             name,
		Email:            email,
		IssueDescription: strings.TrimSpace(text),
	}
}
