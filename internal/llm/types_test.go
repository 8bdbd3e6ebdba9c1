package llm

import "testing"

func TestSplitSystem(t *testing.T) {
	system, rest := splitSystem([]Message{
		SystemText("be brief"),
		UserText("hi"),
		SystemText("answer in English"),
		AssistantText("hello"),
	})

	if system != "be brief\n\nanswer in English" {
		t.Errorf("system = %q", system)
	}
	if len(rest) != 2 || rest[0].Role != RoleUser || rest[1].Role != RoleAssistant {
		t.Errorf("rest = %+v", rest)
	}
}

func TestSplitSystemNoSystem(t *testing.T) {
	system, rest := splitSystem([]Message{UserText("hi")})
	if system != "" {
		t.Errorf("system = %q", system)
	}
	if len(rest) != 1 {
		t.Errorf("rest = %+v", rest)
	}
}

func TestChooseModel(t *testing.T) {
	if got := chooseModel("", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	if got := chooseModel("requested", "fallback"); got != "requested" {
		t.Errorf("got %q", got)
	}
}

func TestMaxTokens(t *testing.T) {
	if got := maxTokens(0, 4096); got != 4096 {
		t.Errorf("got %d", got)
	}
	if got := maxTokens(100, 4096); got != 100 {
		t.Errorf("got %d", got)
	}
}
