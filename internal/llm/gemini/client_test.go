package gemini

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func TestCollectText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{name: "nil response", resp: nil, want: ""},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ""},
		{
			name: "single candidate",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}}},
				},
			},
			want: "hello",
		},
		{
			name: "parts concatenated",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "a"}, {Text: "b"}}}},
				},
			},
			want: "ab",
		},
		{
			name: "first non-empty candidate wins",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "first"}}}},
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "second"}}}},
				},
			},
			want: "first",
		},
		{
			name: "nil candidate skipped",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					nil,
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "ok"}}}},
				},
			},
			want: "ok",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := collectText(tt.resp); got != tt.want {
				t.Fatalf("collectText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient(context.Background(), "", "gemini-1.5-flash"); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewClient(context.Background(), "key", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}
