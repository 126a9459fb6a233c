package storage

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/snake"
)

func TestDecodeHighScores(t *testing.T) {
	tests := []struct {
		name string
		data string
		want highScores
	}{
		{"valid", `{"easy":3,"normal":7,"hard":1}`, highScores{snake.Easy: 3, snake.Normal: 7, snake.Hard: 1}},
		{"missing entries", `{"normal":4}`, highScores{snake.Easy: 0, snake.Normal: 4, snake.Hard: 0}},
		{"negative", `{"easy":-5,"normal":2,"hard":0}`, highScores{snake.Easy: 0, snake.Normal: 2, snake.Hard: 0}},
		{"wrong types", `{"easy":"9","normal":null,"hard":1.5}`, highScores{snake.Easy: 0, snake.Normal: 0, snake.Hard: 0}},
		{"not json", `garbage{`, highScores{snake.Easy: 0, snake.Normal: 0, snake.Hard: 0}},
		{"array", `[1,2,3]`, highScores{snake.Easy: 0, snake.Normal: 0, snake.Hard: 0}},
		{"empty", ``, highScores{snake.Easy: 0, snake.Normal: 0, snake.Hard: 0}},
		{"extra keys", `{"easy":1,"insane":99}`, highScores{snake.Easy: 1, snake.Normal: 0, snake.Hard: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeHighScores([]byte(tt.data))
			for _, d := range snake.Difficulties() {
				if got[d] != tt.want[d] {
					t.Errorf("%s = %d, expected %d", d, got[d], tt.want[d])
				}
			}
		})
	}
}

func TestEncodeHighScoresLayout(t *testing.T) {
	h := highScores{snake.Normal: 12}
	data, err := h.encode()
	if err != nil {
		t.Fatalf("encode() failed: %v", err)
	}

	// encoding/json sorts map keys.
	want := `{"easy":0,"hard":0,"normal":12}`
	if string(data) != want {
		t.Errorf("encode() = %s, expected %s", data, want)
	}

	back := decodeHighScores(data)
	if back[snake.Normal] != 12 {
		t.Errorf("Decoded normal = %d, expected 12", back[snake.Normal])
	}
}
