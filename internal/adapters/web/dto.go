package web

import (
	"strconv"
	"time"

	"backoffice/internal/core"

	"github.com/shopspring/decimal"
)

// JSON shapes of the API. Identifiers are rendered as strings and amounts as
// JSON numbers; the core keeps int64 and decimal.Decimal.

type listResponse struct {
	Data       []recordDTO   `json:"data"`
	Statistics statisticsDTO `json:"statistics"`
	Pagination paginationDTO `json:"pagination"`
	Meta       metaDTO       `json:"meta"`
}

type statisticsDTO struct {
	TotalRegistros          int64          `json:"totalRegistros"`
	TotalMonth              float64        `json:"totalMonth"`
	TotalMonthPrev          float64        `json:"totalMonthPrev"`
	TotalYear               float64        `json:"totalYear"`
	TotalYearPrev           float64        `json:"totalYearPrev"`
	DiferenciaMensual       float64        `json:"diferenciaMensual"`
	DiferenciaAnual         float64        `json:"diferenciaAnual"`
	PorcentajeCambioMensual float64        `json:"porcentajeCambioMensual"`
	PorcentajeCambioAnual   float64        `json:"porcentajeCambioAnual"`
	Categorias              []breakdownDTO `json:"categorias"`
	Tipos                   []breakdownDTO `json:"tipos"`
	TotalsMonths            []monthDTO     `json:"totalsMonths"`
}

type breakdownDTO struct {
	ID          *string `json:"id"`
	Descripcion *string `json:"descripcion"`
	Total       float64 `json:"total"`
	Porcentaje  float64 `json:"porcentaje"`
}

type monthDTO struct {
	Month     string  `json:"month"`
	MonthName string  `json:"monthName"`
	Total     float64 `json:"total"`
}

type paginationDTO struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type metaDTO struct {
	Month     string `json:"month"`
	PrevMonth string `json:"prevMonth"`
}

type recordDTO struct {
	ID          string       `json:"id"`
	Codigo      string       `json:"codigo"`
	Fecha       time.Time    `json:"fecha"`
	Descripcion *string      `json:"descripcion,omitempty"`
	Total       float64      `json:"total"`
	IDCategoria *string      `json:"id_categoria"`
	Categoria   *categoryDTO `json:"categoria"`
	IDEstado    string       `json:"id_estado"`
	IDUsuario   *string      `json:"id_usuario"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type categoryDTO struct {
	ID          string  `json:"id"`
	Descripcion string  `json:"descripcion"`
	IDTipo      *string `json:"id_tipo"`
}

type recordResponse struct {
	Data recordDTO `json:"data"`
}

type categoryListResponse struct {
	Data []categoryDTO `json:"data"`
}

func toListResponse(s *core.Summary) listResponse {
	data := make([]recordDTO, len(s.Data))
	for i, r := range s.Data {
		data[i] = toRecordDTO(r)
	}
	st := s.Statistics
	return listResponse{
		Data: data,
		Statistics: statisticsDTO{
			TotalRegistros:          st.TotalRegistros,
			TotalMonth:              num(st.TotalMonth),
			TotalMonthPrev:          num(st.TotalMonthPrev),
			TotalYear:               num(st.TotalYear),
			TotalYearPrev:           num(st.TotalYearPrev),
			DiferenciaMensual:       num(st.DiferenciaMensual),
			DiferenciaAnual:         num(st.DiferenciaAnual),
			PorcentajeCambioMensual: num(st.PorcentajeCambioMensual),
			PorcentajeCambioAnual:   num(st.PorcentajeCambioAnual),
			Categorias:              toBreakdownDTOs(st.Categorias),
			Tipos:                   toBreakdownDTOs(st.Tipos),
			TotalsMonths:            toMonthDTOs(st.TotalsMonths),
		},
		Pagination: paginationDTO{
			Page:  s.Pagination.Page,
			Limit: s.Pagination.Limit,
			Total: s.Pagination.Total,
			Pages: s.Pagination.Pages,
		},
		Meta: metaDTO{Month: s.Meta.Month, PrevMonth: s.Meta.PrevMonth},
	}
}

func toBreakdownDTOs(items []core.BreakdownItem) []breakdownDTO {
	out := make([]breakdownDTO, len(items))
	for i, it := range items {
		out[i] = breakdownDTO{
			ID:          idPtr(it.ID),
			Descripcion: it.Descripcion,
			Total:       num(it.Total),
			Porcentaje:  num(it.Porcentaje),
		}
	}
	return out
}

func toMonthDTOs(months []core.MonthTotal) []monthDTO {
	out := make([]monthDTO, len(months))
	for i, m := range months {
		out[i] = monthDTO{Month: m.Month, MonthName: m.MonthName, Total: num(m.Total)}
	}
	return out
}

func toRecordDTO(r core.Record) recordDTO {
	dto := recordDTO{
		ID:          id(r.ID),
		Codigo:      r.Code,
		Fecha:       r.Fecha,
		Descripcion: r.Descripcion,
		Total:       num(r.Total),
		IDCategoria: idPtr(r.CategoryID),
		IDEstado:    id(r.StateID),
		IDUsuario:   idPtr(r.UserID),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Category != nil {
		c := toCategoryDTO(*r.Category)
		dto.Categoria = &c
	}
	return dto
}

func toCategoryDTO(c core.Category) categoryDTO {
	return categoryDTO{ID: id(c.ID), Descripcion: c.Descripcion, IDTipo: idPtr(c.TypeID)}
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func idPtr(v *int64) *string {
	if v == nil {
		return nil
	}
	s := id(*v)
	return &s
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
