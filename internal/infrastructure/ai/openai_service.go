// Package ai implementa o oráculo de análise de crédito sobre a API REST da
// OpenAI. Usa net/http da biblioteca padrão; não requer o SDK oficial.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/application/ports"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
)

// Verificação em tempo de compilação de que OpenAIService implementa CreditAnalyst.
var _ ports.CreditAnalyst = (*OpenAIService)(nil)

const (
	openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	openAISystemPrompt = `Você é um analista de crédito sênior de uma seguradora de fiança locatícia no Brasil.
Devolva APENAS um objeto JSON válido (sem markdown, sem blocos de código` + " ```json" + `) com esta estrutura exata:
{
  "score": <inteiro entre 0 e 100>,
  "riskLevel": "<LOW | MEDIUM | HIGH>",
  "maximumCoverage": <número: cobertura máxima recomendada em reais>,
  "monthlyFee": <número: mensalidade recomendada em reais>,
  "adhesionFee": <número: taxa de adesão recomendada em reais>,
  "suggestedStatus": "<APPROVED | IN_ANALYSIS | REJECTED>",
  "indicators": { "<indicador>": <valor>, ... },
  "analystNotes": "<justificativa concisa em português, máximo 300 caracteres>"
}

Regras:
- score: 0 = risco máximo, 100 = risco mínimo. Pondere comprometimento de renda, negativação e vínculo empregatício.
- riskLevel e suggestedStatus devem ser coerentes com o score.
- Não inclua texto fora do JSON. Apenas o objeto JSON.`
)

// OpenAIService adaptador do oráculo sobre a API Chat Completions da OpenAI.
type OpenAIService struct {
	apiKey     string
	model      string
	timeout    time.Duration
	params     scoring.Params
	httpClient *http.Client
}

// NewOpenAIService constrói o adaptador. model costuma ser "gpt-4o-mini".
// timeoutSeconds limita cada chamada (<= 0 usa 10 s): uma análise travada não
// pode segurar a transição de status. params alimenta os defaults
// determinísticos quando a resposta vem sem os campos numéricos. apiKey vazio
// faz IsAvailable devolver false; o motor de scoring então nem chama.
func NewOpenAIService(apiKey, model string, timeoutSeconds int, params scoring.Params) *OpenAIService {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 10
	}
	return &OpenAIService{
		apiKey:  apiKey,
		model:   model,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		params:  params,
		httpClient: &http.Client{
			// Timeout de rede global; o per-call vem do context em AnalyzeCredit.
			Timeout: 25 * time.Second,
		},
	}
}

// IsAvailable informa se o oráculo tem credenciais utilizáveis.
func (s *OpenAIService) IsAvailable() bool {
	if s == nil || s.apiKey == "" {
		return false
	}
	// Placeholders comuns de .env de exemplo não contam como configurado.
	lower := strings.ToLower(s.apiKey)
	return !strings.Contains(lower, "your-api-key") && !strings.Contains(lower, "changeme")
}

// ── Estruturas internas do protocolo Chat Completions ────────────────────────

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// analysisPayload é o JSON que se espera do modelo.
type analysisPayload struct {
	Score           *int            `json:"score"`
	RiskLevel       string          `json:"riskLevel"`
	MaximumCoverage *float64        `json:"maximumCoverage"`
	MonthlyFee      *float64        `json:"monthlyFee"`
	AdhesionFee     *float64        `json:"adhesionFee"`
	SuggestedStatus string          `json:"suggestedStatus"`
	Indicators      map[string]any  `json:"indicators"`
	AnalystNotes    string          `json:"analystNotes"`
}

// jsonBlockRe captura o primeiro objeto JSON do texto mesmo que o modelo o
// envolva em markdown ou texto adicional.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementação da porta ───────────────────────────────────────────────────

// AnalyzeCredit monta o prompt com os fatos da solicitação, chama o modelo e
// normaliza a resposta para um resultado de scoring utilizável.
func (s *OpenAIService) AnalyzeCredit(ctx context.Context, in ports.AnalysisInput) (*scoring.Result, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY não configurado")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload := openAIRequest{
		Model:       s.model,
		Temperature: 0.2,
		MaxTokens:   1024,
		Messages: []openAIMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: buildUserPrompt(in)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: criar HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout ou cancelamento: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: chamada HTTP falhou: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp openAIResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: OpenAI error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: OpenAI HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var oaResp openAIResponse
	if err := json.Unmarshal(rawBody, &oaResp); err != nil {
		return nil, fmt.Errorf("AI: desserializar resposta OpenAI: %w", err)
	}
	if len(oaResp.Choices) == 0 {
		return nil, fmt.Errorf("AI: o modelo devolveu resposta vazia")
	}

	return s.parseResult(oaResp.Choices[0].Message.Content, in)
}

// buildUserPrompt serializa os fatos financeiros e os documentos anexados
// (só metadados) para o modelo.
func buildUserPrompt(in ports.AnalysisInput) string {
	var b strings.Builder
	app := in.Application

	fmt.Fprintf(&b, "Aluguel solicitado: R$ %s\n", app.RequestedRentValue.StringFixed(2))
	fmt.Fprintf(&b, "Renda mensal declarada: R$ %s\n", app.MonthlyIncome.StringFixed(2))
	fmt.Fprintf(&b, "Negativado: %t\n", app.HasNegativeRecords)
	if app.EmploymentStatus != "" {
		fmt.Fprintf(&b, "Vínculo empregatício: %s\n", app.EmploymentStatus)
	}
	if in.Property != nil {
		fmt.Fprintf(&b, "Imóvel: %s, %s/%s\n", in.Property.Title, in.Property.City, in.Property.State)
	}
	if in.Applicant != nil && in.Applicant.FullName != "" {
		fmt.Fprintf(&b, "Solicitante: %s\n", in.Applicant.FullName)
	}
	if len(in.Documents) > 0 {
		b.WriteString("Documentos anexados:\n")
		for _, d := range in.Documents {
			fmt.Fprintf(&b, "- %s (%s, %d bytes)\n", d.OriginalFileName, d.MimeType, d.Size)
		}
	}
	return b.String()
}

// parseResult normaliza a resposta do modelo: score limitado a [0,100],
// literais verificados, campos numéricos ausentes preenchidos pela fórmula
// determinística. A resposta do oráculo nunca entra crua no domínio.
func (s *OpenAIService) parseResult(rawText string, in ports.AnalysisInput) (*scoring.Result, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: nenhum JSON válido na resposta do modelo (resposta: %s)", rawText)
	}

	var p analysisPayload
	if err := json.Unmarshal([]byte(cleanJSON), &p); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de análise: %w (JSON extraído: %s)", err, cleanJSON)
	}

	// Defaults determinísticos para tudo que o modelo não mandou direito.
	baseline := scoring.Calculate(scoring.Input{
		Rent:               in.Application.RequestedRentValue,
		Income:             in.Application.MonthlyIncome,
		HasNegativeRecords: in.Application.HasNegativeRecords,
		EmploymentStatus:   in.Application.EmploymentStatus,
	}, s.params)

	score := 50
	if p.Score != nil {
		score = *p.Score
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}
	}

	bandStatus, bandRisk := scoring.BandFor(score)
	riskLevel := p.RiskLevel
	if !entity.IsValidRiskLevel(riskLevel) {
		riskLevel = bandRisk
	}
	suggestedStatus := p.SuggestedStatus
	if !entity.IsValidApplicationStatus(suggestedStatus) {
		suggestedStatus = bandStatus
	}

	coverage := baseline.MaximumCoverage
	if p.MaximumCoverage != nil && *p.MaximumCoverage > 0 {
		coverage = decimal.NewFromFloat(*p.MaximumCoverage).Round(2)
	}
	monthlyFee := baseline.MonthlyFee
	if p.MonthlyFee != nil && *p.MonthlyFee > 0 {
		monthlyFee = decimal.NewFromFloat(*p.MonthlyFee).Round(2)
	}
	adhesionFee := baseline.AdhesionFee
	if p.AdhesionFee != nil && *p.AdhesionFee > 0 {
		adhesionFee = decimal.NewFromFloat(*p.AdhesionFee).Round(2)
	}

	indicators := p.Indicators
	if indicators == nil {
		indicators = baseline.Indicators
	}

	return &scoring.Result{
		Score:           score,
		RiskLevel:       riskLevel,
		MaximumCoverage: coverage,
		MonthlyFee:      monthlyFee,
		AdhesionFee:     adhesionFee,
		Indicators:      indicators,
		SuggestedStatus: suggestedStatus,
		AnalystNotes:    p.AnalystNotes,
	}, nil
}

// extractJSON extrai o primeiro objeto JSON bem formado de um texto livre.
// Dois passos:
//  1. Remover blocos de código markdown (```json … ``` ou ``` … ```).
//  2. Regex para capturar o primeiro bloco { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
