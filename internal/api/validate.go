package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gmondol/Clav-Cal/internal/models"
)

var complexityRule = validation.In(models.ComplexityLow, models.ComplexityMedium, models.ComplexityHigh)

var statusRule = validation.In(models.StatusIdea, models.StatusWorkshop, models.StatusReady, models.StatusUsed)
