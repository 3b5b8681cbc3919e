package v1

import "github.com/safewords/safewords_backend/internal/models"

// ModelToContactResponse преобразует доменную модель в DTO для ответа
func ModelToContactResponse(model *models.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        model.ID,
		Name:      model.Name,
		Number:    model.Number,
		Verified:  model.Verified,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ModelsToContactResponses преобразует слайс моделей в слайс DTO
func ModelsToContactResponses(models []*models.Contact) []*ContactResponse {
	responses := make([]*ContactResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToContactResponse(model)
	}
	return responses
}

// ModelsToPredefinedResponses преобразует статусы фиксированных номеров в DTO
func ModelsToPredefinedResponses(statuses []*models.PredefinedStatus) []*PredefinedContactResponse {
	responses := make([]*PredefinedContactResponse, len(statuses))
	for i, s := range statuses {
		responses[i] = &PredefinedContactResponse{
			Name:   s.Name,
			Number: s.Number,
			Added:  s.Added,
		}
	}
	return responses
}

// ModelsToAlertResponses преобразует записи журнала в DTO
func ModelsToAlertResponses(entries []*models.AlertEntry) []*AlertResponse {
	responses := make([]*AlertResponse, len(entries))
	for i, e := range entries {
		resp := &AlertResponse{
			ID:        e.ID,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		}
		if e.Location != nil {
			lat, lon := e.Location.Latitude, e.Location.Longitude
			resp.Latitude = &lat
			resp.Longitude = &lon
		}
		responses[i] = resp
	}
	return responses
}

// ModelToLocationResponse преобразует измерение координат в DTO
func ModelToLocationResponse(fix *models.LocationFix) *LocationResponse {
	if fix == nil {
		return nil
	}
	return &LocationResponse{
		Latitude:  fix.Latitude,
		Longitude: fix.Longitude,
		Timestamp: fix.Timestamp,
	}
}

// ModelToStatusResponse преобразует срез состояния в DTO
func ModelToStatusResponse(status *models.PanicStatus) *StatusResponse {
	return &StatusResponse{
		State:        string(status.State),
		Tracking:     status.Tracking,
		Permission:   string(status.Permission),
		LastFix:      ModelToLocationResponse(status.LastFix),
		ContactCount: status.ContactCount,
		SMSAvailable: status.SMSAvailable,
	}
}
