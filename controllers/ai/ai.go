package aiController

import (
	"encoding/json"
	"fmt"
	"lms/config"
	"lms/middleware"
	"log"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// GenerateQuiz proxies a quiz-generation request to the configured AI
// service and returns its JSON payload untouched. The service is an external
// collaborator; no prompt state is kept here.
func GenerateQuiz(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if config.AppConfig.AiApiKey == "" {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Quiz generation is not configured!", nil)
	}

	reqData := new(struct {
		Topic         string `json:"topic"`
		QuestionCount int    `json:"question_count"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Topic == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Topic is required!", nil)
	}
	if reqData.QuestionCount <= 0 {
		reqData.QuestionCount = 5
	}

	prompt := fmt.Sprintf(
		"Generate %d multiple-choice questions about %q. Respond with a JSON array of objects with fields: question, options (4 strings), correct_index.",
		reqData.QuestionCount, reqData.Topic,
	)

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.AiApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": config.AppConfig.AiApiModel,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		}).
		Post(config.AppConfig.AiApiURL)
	if err != nil {
		log.Printf("Failed to reach AI service: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to reach the AI service!", nil)
	}
	if resp.StatusCode() != 200 {
		log.Printf("AI service returned %d: %s", resp.StatusCode(), resp.String())
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "AI service request failed!", nil)
	}

	var aiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &aiResp); err != nil || len(aiResp.Choices) == 0 {
		log.Printf("Failed to parse AI response: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Invalid AI service response!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz generated successfully!", fiber.Map{
		"topic":     reqData.Topic,
		"questions": aiResp.Choices[0].Message.Content,
	})
}
