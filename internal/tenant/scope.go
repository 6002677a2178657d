package tenant

import "gorm.io/gorm"

// Scope membatasi query ke satu company. Semua read path repo wajib lewat
// sini; isolasi tenant tidak boleh bergantung pada disiplin caller.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ScopeAliased sama dengan Scope untuk query yang meng-alias tabelnya,
// mis. agregasi lintas tabel.
func ScopeAliased(alias, companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".company_id = ?", companyID)
	}
}
