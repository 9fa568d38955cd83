package dto

// PageRequest paginación y búsqueda para listados.
type PageRequest struct {
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
	Search string `query:"search"`
}

// DefaultPage aplica valores por defecto y topes si Limit/Offset no vienen.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
