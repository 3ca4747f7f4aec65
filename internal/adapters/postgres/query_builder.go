package postgres

import (
	"fmt"
	"strings"

	"github.com/saurav73/GrihaMate/internal/core/port"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

func (qb *queryBuilder) AddInt64Filter(fieldName string, min *int64, max *int64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// build создает финальную WHERE-часть запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFilters разбирает фильтры поиска и строит запрос
func applyFilters(filter port.PropertySearchFilter) (string, []interface{}) {
	qb := newQueryBuilder()

	// Город/район - точное совпадение без учета регистра
	if filter.City != "" {
		qb.addCondition("LOWER(%s) = LOWER($%d)", "p.city", filter.City)
	}
	if filter.District != "" {
		qb.addCondition("LOWER(%s) = LOWER($%d)", "p.district", filter.District)
	}

	qb.AddInt64Filter("p.price", filter.MinPrice, filter.MaxPrice)

	if filter.MinBedrooms != nil {
		qb.addCondition("%s >= $%d", "p.bedrooms", *filter.MinBedrooms)
	}
	if filter.Type != nil {
		qb.addCondition("%s = $%d", "p.type", string(*filter.Type))
	}

	// Гео-фильтр: объекты в ячейке geohash-префикса и соседних ячейках
	// попадают под LIKE по префиксу.
	if filter.GeohashPrefix != "" {
		qb.addCondition("%s LIKE $%d", "p.geohash", filter.GeohashPrefix+"%")
	}

	return qb.build()
}
