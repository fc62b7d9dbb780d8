package entity

// BuildReport counters for one catalog build
type BuildReport struct {
	RunID          string
	ProductRows    int
	Entries        int
	DuplicateCodes int
	BlankCodes     int
	SalesLoaded    bool
	SalesCodes     int
	ImagesFound    int
	ImagesMatched  int
	ImagesSkipped  int
	Oversold       int
	Warnings       int
	CatalogPath    string
	InventoryPath  string
}
