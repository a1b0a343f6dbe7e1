/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"

	"chainguard.dev/skillcheck/agents/promptbuilder"

	"chainguard.dev/skillcheck/evals/answerkey"
)

// systemPrompt is the judge system instruction. The design choices are
// deliberate and load-bearing:
//
//   - reasoning is requested BEFORE each score (chain-of-thought ordering
//     measurably improves alignment with human graders),
//   - per-issue scoring is strictly binary with one calibration example for
//     each anchor, never a continuous scale,
//   - response length is explicitly excluded from scoring to counter
//     verbosity bias,
//   - the judge scores against the answer key's rubric text, not its own
//     independent legal opinion.
var systemPrompt = promptbuilder.MustNewPrompt(`You are an expert legal-review evaluator. Your job is to assess the quality
of an AI model's analysis of a legal document, using the provided answer key.

You must evaluate THREE things:

## 1. Recommendation Match

Did the model give a clear overall recommendation for the document (for
example: sign, negotiate, or don't sign)? Compare it to the
expected_recommendation in the answer key and decide whether they match.

## 2. Per-Issue Detection (binary)

For every issue in the answer key, score 1 if the model identified this issue
(even if imperfectly) or 0 if it missed it entirely. Evaluate strictly against
the rubric question given for each issue, not against your own independent
legal opinion of the document. For each issue,
FIRST write a brief reasoning explanation, THEN assign the score.
Scores are binary: exactly 0 or 1, never a fraction.

### Calibration Examples

**Score 1 (detected)**: The model explicitly names or substantively discusses
the concern, even using different terminology. E.g., the answer key says
"unilateral termination clause" and the model discusses "one-sided right to
end the agreement." The model must show awareness of the specific risk, not
just mention the section heading.

**Score 0 (missed)**: The issue is not mentioned at all, or only tangentially
referenced without substantive analysis. Merely listing a clause heading
without analyzing the underlying risk does NOT count as detection.

## 3. False Positives

List any provisions the model flagged as problematic that are actually
standard, reasonable, or well-drafted. If the answer key includes
false_positive_traps, use them as the guide for classifying issues the model
asserted that are not in the answer key.

## Important: Avoid Verbosity Bias

Do NOT give credit for length. A concise response that identifies an issue in
one sentence scores the same as a verbose response that takes a paragraph.
Only substantive identification of an issue counts; penalize padding without
analytical substance.

## Output Format

Return ONLY a JSON object with exactly this structure (no other text):

` + "```json" + `
{
  "issues": {
    "ISSUE-01": {
      "detected": 1,
      "reasoning": "1 sentence explaining what the model did or did not cover"
    }
  },
  "recommendation_match": 1,
  "recommendation_reasoning": "1 sentence explaining how you determined the model's recommendation",
  "false_positives": [
    {
      "description": "flagged standard severability clause"
    }
  ]
}
` + "```" + `

Use 1 for true and 0 for false. Include an entry under "issues" for every
issue id in the answer key.

Be strict but fair. Score based on substance, not formatting or length.`)

// userPrompt carries the per-evaluation inputs: the document under review,
// the answer key as JSON, optional business context, and the candidate
// response being evaluated.
var userPrompt = promptbuilder.MustNewPrompt(`{{document}}

{{answer_key}}

{{business_context}}

{{response}}`)

// Request carries everything a judge needs to score one candidate response.
type Request struct {
	// Document is the full text of the document under review.
	Document string `json:"document"`

	// Key is the expert answer key the response is scored against.
	Key *answerkey.AnswerKey `json:"key"`

	// BusinessContext overrides the answer key's business context when set.
	BusinessContext string `json:"business_context,omitempty"`

	// Response is the candidate model's review being evaluated.
	Response string `json:"response"`
}

func (r *Request) businessContext() string {
	if r.BusinessContext != "" {
		return r.BusinessContext
	}
	if r.Key != nil {
		return r.Key.BusinessContext
	}
	return ""
}

// Bind implements promptbuilder.Bindable for Request
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	if r.Key == nil {
		return nil, fmt.Errorf("answer key is required")
	}

	var err error
	if prompt, err = prompt.BindXML("document", struct {
		XMLName struct{} `xml:"document_under_review"`
		Content string   `xml:",chardata"`
	}{
		Content: r.Document,
	}); err != nil {
		return nil, err
	}

	// The business context is rendered in its own <business_context> tag
	// below, where a Request-level override takes precedence. Strip it from
	// the answer-key JSON so an overridden judge never sees both values.
	key := *r.Key
	key.BusinessContext = ""
	if prompt, err = prompt.BindJSON("answer_key", &key); err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindXML("business_context", struct {
		XMLName struct{} `xml:"business_context"`
		Content string   `xml:",chardata"`
	}{
		Content: r.businessContext(),
	}); err != nil {
		return nil, err
	}

	return prompt.BindXML("response", struct {
		XMLName struct{} `xml:"response_to_evaluate"`
		Content string   `xml:",chardata"`
	}{
		Content: r.Response,
	})
}

// BuildPrompt renders the (system, user) instruction pair for a judge call.
// Pure function of the request; provider judges share the same pair so that
// every judge in a panel sees identical instructions.
func BuildPrompt(req *Request) (system, user string, err error) {
	system, err = systemPrompt.Build()
	if err != nil {
		return "", "", fmt.Errorf("building system instruction: %w", err)
	}

	bound, err := req.Bind(userPrompt)
	if err != nil {
		return "", "", fmt.Errorf("binding judge request: %w", err)
	}
	user, err = bound.Build()
	if err != nil {
		return "", "", fmt.Errorf("building user instruction: %w", err)
	}
	return system, user, nil
}
