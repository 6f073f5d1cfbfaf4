package crisis_test

import (
	"context"
	"testing"

	"github.com/freundlier/intake/pkg/service/crisis"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"NO"}}, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, goerr.New("not implemented")
}

func replyWith(text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

func TestScreen(t *testing.T) {
	detector := crisis.NewDetector(&mockLLMClient{}, nil)

	cases := []struct {
		name    string
		message string
		match   bool
	}{
		{"english keyword", "I want to die", true},
		{"keyword at start", "suicide is on my mind", true},
		{"keyword at end", "I think about suicide", true},
		{"keyword before punctuation", "main khatam, bas", true},
		{"roman urdu phrase", "mujhe jaan dena hai", true},
		{"urdu script keyword", "میں خودکشی کرنا چاہتا ہوں", true},
		{"case insensitive", "I feel HOPELESS today", true},
		{"keyword inside word does not match", "the market was busy", false},
		{"ending substring does not match", "they plan to remarry", false},
		{"neutral message", "I have trouble sleeping lately", false},
		{"empty message", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, detector.Screen(tc.message)).Equal(tc.match)
		})
	}
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("plain YES confirms", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("YES"), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).True()
	})

	t.Run("YES with trailing explanation confirms", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("YES, this indicates suicidal ideation."), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).True()
	})

	t.Run("lowercase yes confirms after normalization", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("yes."), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).True()
	})

	t.Run("YES not at start does not confirm", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("The answer is YES"), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).False()
	})

	t.Run("YESTERDAY does not confirm", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("YESTERDAY the patient was fine"), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).False()
	})

	t.Run("NO does not confirm", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("NO"), nil)
		gt.Bool(t, detector.Confirm(ctx, "the market was busy")).False()
	})

	t.Run("empty reply does not confirm", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith(""), nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).False()
	})

	t.Run("session error fails toward confirmation", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, goerr.New("provider unavailable")
			},
		}
		detector := crisis.NewDetector(client, nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).True()
	})

	t.Run("generation error fails toward confirmation", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, goerr.New("rate limited")
					},
				}, nil
			},
		}
		detector := crisis.NewDetector(client, nil)
		gt.Bool(t, detector.Confirm(ctx, "I want to die")).True()
	})
}

func TestCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("no keyword skips classifier", func(t *testing.T) {
		called := false
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				called = true
				return &mockLLMSession{}, nil
			},
		}
		detector := crisis.NewDetector(client, nil)
		gt.Bool(t, detector.Check(ctx, "I have trouble sleeping")).False()
		gt.Bool(t, called).False()
	})

	t.Run("keyword plus YES confirms", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("YES"), nil)
		gt.Bool(t, detector.Check(ctx, "I want to end it all")).True()
	})

	t.Run("keyword plus NO clears", func(t *testing.T) {
		detector := crisis.NewDetector(replyWith("NO"), nil)
		gt.Bool(t, detector.Check(ctx, "my phone died at the end of the day")).False()
	})
}
