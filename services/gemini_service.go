package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	config "github.com/yenthanh/chemistry_tutor/configs"
	"github.com/yenthanh/chemistry_tutor/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-3-flash-preview"
)

var validateGenerated = validator.New()

// GeminiService requests new multiple-choice questions from the
// generative-model backend. Generation is a best-effort enrichment:
// every failure mode collapses to an empty result so the question-bank
// UI stays usable when the backend is down.
type GeminiService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

var geminiService *GeminiService

func InitGeminiService() {
	geminiService = &GeminiService{
		Client:  &http.Client{Timeout: 60 * time.Second},
		BaseURL: defaultGeminiBaseURL,
		APIKey:  config.Config("GEMINI_API_KEY"),
		Model:   defaultGeminiModel,
	}
}

func GetGeminiService() *GeminiService {
	return geminiService
}

type geminiSchema struct {
	Type        string                   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Items       *geminiSchema            `json:"items,omitempty"`
	Properties  map[string]*geminiSchema `json:"properties,omitempty"`
	Required    []string                 `json:"required,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string        `json:"responseMimeType"`
	ResponseSchema   *geminiSchema `json:"responseSchema"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// questionSchema pins the model output to an array of question records
// with exactly the fields the bank appends.
var questionSchema = &geminiSchema{
	Type: "ARRAY",
	Items: &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"question": {Type: "STRING"},
			"options": {
				Type:        "ARRAY",
				Items:       &geminiSchema{Type: "STRING"},
				Description: "Exactly 4 options",
			},
			"correctAnswer": {
				Type:        "INTEGER",
				Description: "Index of the correct option (0-3)",
			},
			"explanation": {Type: "STRING"},
			"topic":       {Type: "STRING"},
		},
		Required: []string{"question", "options", "correctAnswer", "explanation", "topic"},
	},
}

func generationPrompt(count int) string {
	return fmt.Sprintf(`Generate %d multiple choice questions for IGCSE|A/AS Chemistry.
Topics include:
CHAPTER 1: Atomic Structure (Subatomic particles, Atomic number, Mass number, Isotopes, Relative atomic mass, Ion formation, Ionisation Energy, Electronic configuration, Trends).
CHAPTER 2: Atoms, Molecules & Stoichiometry (Mole concept, Avogadro constant, n=m/Mr, Gas volume at r.t.p (24dm3), Concentration c=n/V, Limiting reagents, Percentage yield, Atom economy, Empirical/Molecular formulas, Titration calculations, Back titration, Hydrated salts).
CHAPTER 3: Chemical Bonding (Ionic, Covalent, Dative, Metallic bonding, Electronegativity, Bond polarity, Intermolecular forces, Hydrogen bonding, VSEPR shapes, Bond angles, Bond enthalpy calculations).
CHAPTER 4: States of Matter (Solid, liquid, gas properties, IMF, Boiling/Melting points, Vapor pressure, Gas laws: Boyle, Charles, Avogadro, Ideal gas equation PV=nRT, Maxwell-Boltzmann distribution, Activation energy, Ideal gas deviations).
CHAPTER 5: Periodicity (Atomic/Ionic radius, Ionisation energy, Electronegativity, Shielding, Nuclear charge, Trends across periods and down groups, Group 2 and Group 7 properties, Displacement reactions, Oxide nature).

Provide explanations in English.
Ensure the questions are challenging and suitable for AS Level.`, count)
}

// GenerateQuestions asks the backend for count new question records.
// It returns between 0 and count validated records and never an error:
// a missing API key, a failed call, an empty response or unparsable
// output are all logged and reported as zero new questions.
func (g *GeminiService) GenerateQuestions(count int) []models.GeneratedQuestion {
	if g.APIKey == "" {
		log.Println("GEMINI_API_KEY not configured, skipping question generation")
		return nil
	}

	text, err := g.generateContent(generationPrompt(count))
	if err != nil {
		log.Printf("Error generating questions: %v", err)
		return nil
	}
	if text == "" {
		log.Println("Question generation returned an empty response")
		return nil
	}

	var generated []models.GeneratedQuestion
	if err := json.Unmarshal([]byte(text), &generated); err != nil {
		log.Printf("Failed to parse generated questions: %v", err)
		return nil
	}

	valid := generated[:0]
	for _, q := range generated {
		if err := validateGenerated.Struct(q); err != nil {
			log.Printf("Dropping generated question that failed validation: %v", err)
			continue
		}
		valid = append(valid, q)
	}
	return valid
}

func (g *GeminiService) generateContent(prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   questionSchema,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %v", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal generation response: %v", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
