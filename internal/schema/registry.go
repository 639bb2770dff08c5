package schema

// The five built-in definitions. They form a field superset chain around the
// {type, confidence} core: minimal ⊂ standard ⊂ detailed, with optimized and
// context_aware as alternative extensions of the same core.

func bound(v float64) *float64 { return &v }

func typeField(desc string) FieldSpec {
	return FieldSpec{
		Name:        "type",
		Kind:        KindEnum,
		Required:    true,
		Description: desc,
		Enum:        []string{"prompt", "workflow"},
	}
}

func confidenceField(desc string) FieldSpec {
	return FieldSpec{
		Name:        "confidence",
		Kind:        KindFloat,
		Required:    true,
		Description: desc,
		Min:         bound(0.0),
		Max:         bound(1.0),
	}
}

var minimalDef = &Definition{
	Name: "minimal",
	Fields: []FieldSpec{
		typeField("Classification: prompt (single-step) or workflow (multi-step)"),
		confidenceField("Confidence score from 0.0 to 1.0"),
	},
}

var standardDef = &Definition{
	Name: "standard",
	Fields: []FieldSpec{
		typeField("Classification: prompt (single-step task) or workflow (multi-step orchestrated task)"),
		confidenceField("Confidence score from 0.0 to 1.0"),
		{
			Name:        "reasoning",
			Kind:        KindString,
			Required:    true,
			Description: "Brief explanation of why this classification was chosen",
			MaxLen:      150,
		},
	},
}

var detailedDef = &Definition{
	Name: "detailed",
	Fields: []FieldSpec{
		typeField("Classification: prompt (conversational/single-step) or workflow (complex/multi-step)"),
		confidenceField("Confidence score from 0.0 to 1.0"),
		{
			Name:        "reasoning",
			Kind:        KindString,
			Required:    true,
			Description: "Detailed explanation of classification decision",
			MaxLen:      200,
		},
		{
			Name:        "indicators",
			Kind:        KindStringList,
			Required:    true,
			Description: "Key indicators that led to this classification",
		},
		{
			Name:        "complexity_score",
			Kind:        KindInt,
			Required:    true,
			Description: "Task complexity rating: 1=simple, 5=very complex",
			Min:         bound(1),
			Max:         bound(5),
		},
	},
	Addendum: `**Additional Analysis Required:**
- indicators: List key words/phrases that influenced your decision
- complexity_score: Rate 1-5 (1=very simple, 5=very complex)`,
}

var optimizedDef = &Definition{
	Name: "optimized",
	Fields: []FieldSpec{
		typeField("Classification: prompt (single-step request) or workflow (multi-step task requiring orchestration)"),
		confidenceField("Classification confidence from 0.0 to 1.0"),
		{
			Name:        "reasoning",
			Kind:        KindString,
			Required:    true,
			Description: "Concise reasoning for this classification",
			MinLen:      10,
			MaxLen:      100,
		},
		{
			Name:        "task_steps",
			Kind:        KindInt,
			Required:    true,
			Description: "Estimated number of steps required to complete this task",
			Min:         bound(1),
		},
	},
	Addendum: `**Additional Analysis Required:**
- task_steps: Estimate number of distinct steps needed`,
}

var contextAwareDef = &Definition{
	Name: "context_aware",
	Fields: []FieldSpec{
		typeField("prompt: direct question/request, workflow: requires multiple coordinated steps"),
		confidenceField("Confidence score from 0.0 to 1.0"),
		{
			Name:        "reasoning",
			Kind:        KindString,
			Required:    true,
			Description: "Brief explanation of classification decision",
			MaxLen:      150,
		},
		{
			Name:        "conversation_context",
			Kind:        KindEnum,
			Required:    true,
			Description: "Context type: greeting/question/follow_up always prompt, task_request/multi_step may be workflow",
			Enum:        []string{"greeting", "question", "follow_up", "task_request", "multi_step"},
		},
		{
			Name:        "step_count",
			Kind:        KindInt,
			Required:    true,
			Description: "Estimated number of steps needed (1=prompt, 2+=workflow)",
			Min:         bound(1),
		},
		{
			Name:        "requires_coordination",
			Kind:        KindBool,
			Required:    true,
			Description: "Does this require coordinating multiple tools/services?",
		},
	},
	Addendum: `**Additional Analysis Required:**
- conversation_context: "greeting" for hi/hello, "question" for queries, "task_request" for work requests
- step_count: Count estimated steps (1 = prompt, 2+ = workflow)
- requires_coordination: True if multiple tools/services needed`,
}

var order = []string{"minimal", "standard", "detailed", "optimized", "context_aware"}

var registry = map[string]*Definition{
	"minimal":       minimalDef,
	"standard":      standardDef,
	"detailed":      detailedDef,
	"optimized":     optimizedDef,
	"context_aware": contextAwareDef,
}
