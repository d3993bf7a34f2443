package model

import "time"

// SettingsRowID é o identificador fixo da única linha de configurações.
// A tabela é explicitamente de linha única: toda escrita converge para
// este id, eliminando a ambiguidade de "primeira linha encontrada".
const SettingsRowID uint = 1

// Settings são as configurações de exibição da loja
type Settings struct {
	ID              uint      `json:"id"`
	SiteName        string    `json:"siteName"`
	HeroTitle       string    `json:"heroTitle"`
	HeroSubtitle    string    `json:"heroSubtitle"`
	NovidadesTitle  string    `json:"novidadesTitle"`
	ColecaoTitle    string    `json:"colecaoTitle"`
	FooterText      string    `json:"footerText"`
	PrimaryColor    string    `json:"primaryColor"`
	SecondaryColor  string    `json:"secondaryColor"`
	BackgroundColor string    `json:"backgroundColor"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SettingsEntity é a representação de banco de dados das configurações
type SettingsEntity struct {
	ID              uint      `gorm:"primaryKey"`
	SiteName        string    `gorm:"size:200"`
	HeroTitle       string    `gorm:"size:200"`
	HeroSubtitle    string    `gorm:"type:text"`
	NovidadesTitle  string    `gorm:"size:200"`
	ColecaoTitle    string    `gorm:"size:200"`
	FooterText      string    `gorm:"type:text"`
	PrimaryColor    string    `gorm:"size:20"`
	SecondaryColor  string    `gorm:"size:20"`
	BackgroundColor string    `gorm:"size:20"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (SettingsEntity) TableName() string {
	return "site_settings"
}

// ToModel converte a entidade para o modelo exposto pela API
func (e *SettingsEntity) ToModel() *Settings {
	return &Settings{
		ID:              e.ID,
		SiteName:        e.SiteName,
		HeroTitle:       e.HeroTitle,
		HeroSubtitle:    e.HeroSubtitle,
		NovidadesTitle:  e.NovidadesTitle,
		ColecaoTitle:    e.ColecaoTitle,
		FooterText:      e.FooterText,
		PrimaryColor:    e.PrimaryColor,
		SecondaryColor:  e.SecondaryColor,
		BackgroundColor: e.BackgroundColor,
		UpdatedAt:       e.UpdatedAt,
	}
}

// DefaultSettings retorna os valores padrão usados quando a linha ainda não
// existe ou quando a leitura pública falha
func DefaultSettings() *Settings {
	return &Settings{
		ID:              SettingsRowID,
		SiteName:        "Proenca's Moda",
		HeroTitle:       "Bem-vinda à Proenca's Moda",
		HeroSubtitle:    "Descubra nossa coleção exclusiva de roupas femininas. Plus size e vestidos elegantes para todos os momentos.",
		NovidadesTitle:  "🆕 Novidades",
		ColecaoTitle:    "Nossa Coleção",
		FooterText:      "Moda feminina com estilo e elegância",
		PrimaryColor:    "#db2777",
		SecondaryColor:  "#ec4899",
		BackgroundColor: "#fdf2f8",
	}
}

// DefaultSettingsEntity retorna a entidade padrão para a criação preguiçosa
func DefaultSettingsEntity() *SettingsEntity {
	defaults := DefaultSettings()
	return &SettingsEntity{
		ID:              SettingsRowID,
		SiteName:        defaults.SiteName,
		HeroTitle:       defaults.HeroTitle,
		HeroSubtitle:    defaults.HeroSubtitle,
		NovidadesTitle:  defaults.NovidadesTitle,
		ColecaoTitle:    defaults.ColecaoTitle,
		FooterText:      defaults.FooterText,
		PrimaryColor:    defaults.PrimaryColor,
		SecondaryColor:  defaults.SecondaryColor,
		BackgroundColor: defaults.BackgroundColor,
	}
}
