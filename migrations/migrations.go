// Пакет migrations — SQL-миграции схемы слота корзины, вшитые в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
