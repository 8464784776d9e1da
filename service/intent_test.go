package service

import "testing"

func TestDetectSupportRequest(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNil   bool
		wantName  string
		wantEmail string
	}{
		{
			name:      "name and email",
			text:      "My name is Jane Doe and my email is jane@x.com, contact support",
			wantName:  "Jane Doe",
			wantEmail: "jane@x.com",
		},
		{
			name:      "i am",
			text:      "I am Bob Stone, bob.stone@example.org. I want to talk to a human please",
			wantName:  "Bob Stone",
			wantEmail: "bob.stone@example.org",
		},
		{
			name:      "x here",
			text:      "Alice here, alice@example.com - please open a support ticket",
			wantName:  "Alice",
			wantEmail: "alice@example.com",
		},
		{
			name:      "greeting before x here",
			text:      "Hi, Alice here, alice@example.com - please open a support ticket",
			wantName:  "Alice",
			wantEmail: "alice@example.com",
		},
		{
			name:      "greeting without comma",
			text:      "Hello Bob Stone here. Contact support at bob@example.org",
			wantName:  "Bob Stone",
			wantEmail: "bob@example.org",
		},
		{
			name:      "x here after a sentence",
			text:      "The reset failed. Alice here, alice@example.com, I need help from support",
			wantName:  "Alice",
			wantEmail: "alice@example.com",
		},
		{
			name:      "this is",
			text:      "Hi, this is Carlos. Customer support please: carlos@mail.es",
			wantName:  "Carlos",
			wantEmail: "carlos@mail.es",
		},
		{
			name:      "vietnamese",
			text:      "Tên tôi là Nguyễn Văn An, email an@vidu.vn, tôi muốn liên hệ hỗ trợ",
			wantName:  "Nguyễn Văn An",
			wantEmail: "an@vidu.vn",
		},
		{
			name:    "missing email",
			text:    "My name is Jane Doe, contact support",
			wantNil: true,
		},
		{
			name:    "missing name",
			text:    "contact support at jane@x.com",
			wantNil: true,
		},
		{
			name:    "no support intent",
			text:    "My name is Jane Doe and my email is jane@x.com. How do I reset?",
			wantNil: true,
		},
		{
			name:    "lowercase after i am is not a name",
			text:    "I am having trouble, contact support: jane@x.com",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSupportRequest(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("Expected a ticket request, got nil")
			}
			if got.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", got.Name, tt.wantName)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", got.Email, tt.wantEmail)
			}
			if got.IssueDescription != tt.text {
				t.Errorf("Expected issue description to be the message")
			}
		})
	}
}

func TestIsSupportRequest(t *testing.T) {
	yes := []string{
		"Can I speak with an agent?",
		"I need to contact the help desk",
		"please create a ticket",
		"Tôi cần hỗ trợ kỹ thuật",
		"cho tôi gặp nhân viên",
	}
	no := []string{
		"How do I export a report?",
		"What does the support matrix show?",
	}
	for _, s := range yes {
		if !IsSupportRequest(s) {
			t.Errorf("Expected %q to be a support request", s)
		}
	}
	for _, s := range no {
		if IsSupportRequest(s) {
			t.Errorf("Expected %q not to be a support request", s)
		}
	}
}
