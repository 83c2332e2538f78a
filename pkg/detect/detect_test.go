package detect_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/wsfmt/pkg/detect"
)

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "empty content",
			content: "",
			want:    false,
		},
		{
			name:    "plain text",
			content: "hello world\n",
			want:    false,
		},
		{
			name:    "multibyte text",
			content: "héllo 日本\r\n",
			want:    false,
		},
		{
			name:    "control whitespace is still text",
			content: "a\tb\vc\fd\r\n",
			want:    false,
		},
		{
			name:    "NUL byte marks binary",
			content: "GIF89a\x00\x00",
			want:    true,
		},
		{
			name:    "png header",
			content: "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR",
			want:    true,
		},
		{
			name:    "elf header",
			content: "\x7fELF\x02\x01\x01\x00",
			want:    true,
		},
		{
			name:    "NUL inside the sniff window",
			content: strings.Repeat("a", 7999) + "\x00",
			want:    true,
		},
		{
			name:    "NUL beyond the sniff window is not seen",
			content: strings.Repeat("a", 8000) + "\x00",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := detect.IsBinary([]byte(tt.content))

			if got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkIsBinaryText(b *testing.B) {
	content := []byte(strings.Repeat("the quick brown fox\n", 500))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detect.IsBinary(content)
	}
}

func BenchmarkIsBinaryBinary(b *testing.B) {
	content := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR" + strings.Repeat("\x00\x01", 4000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detect.IsBinary(content)
	}
}
