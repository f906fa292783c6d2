package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData []map[string]string    `json:"sampleData,omitempty"`
}

// ImportRowError represents an error for a specific row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	CreatedIDs   []string         `json:"createdIds,omitempty"`
}

// TransferHandler exports the catalog to Excel and bulk-imports products
type TransferHandler struct {
	service *services.CatalogService
	logger  *logrus.Entry
}

func NewTransferHandler(service *services.CatalogService, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{
		service: service,
		logger:  logger.WithField("component", "transfer_handler"),
	}
}

// ProductImportTemplate returns the template definition for products
func ProductImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "products",
		Version: "1.0",
		Columns: []ImportTemplateColumn{
			{Name: "name", Description: "Product name in English", Required: true, Type: "string", Example: "Linen Shirt"},
			{Name: "nameAr", Description: "Product name in Arabic (defaults to English)", Required: false, Type: "string", Example: "قميص كتان"},
			{Name: "description", Description: "Description in English", Required: false, Type: "string", Example: "Breathable summer shirt"},
			{Name: "descriptionAr", Description: "Description in Arabic", Required: false, Type: "string", Example: "قميص صيفي خفيف"},
			{Name: "price", Description: "Price, zero or more", Required: true, Type: "number", Example: "45.00"},
			{Name: "image", Description: "Image URL", Required: false, Type: "string", Example: "https://example.com/shirt.jpg"},
			{Name: "sizes", Description: "Comma-separated sizes", Required: false, Type: "string", Example: "S,M,L"},
			{Name: "colors", Description: "Comma-separated colors", Required: false, Type: "string", Example: "White,Blue"},
			{Name: "category", Description: "Category ID or English name", Required: true, Type: "string", Example: "Men's Apparel"},
			{Name: "subCategory", Description: "Subcategory ID or English name", Required: true, Type: "string", Example: "Shirts"},
			{Name: "isActive", Description: "Whether the product is visible (true/false)", Required: false, Type: "boolean", Example: "true"},
		},
		SampleData: []map[string]string{
			{
				"name":          "Linen Shirt",
				"nameAr":        "قميص كتان",
				"description":   "Breathable summer shirt",
				"descriptionAr": "قميص صيفي خفيف",
				"price":         "45.00",
				"image":         "",
				"sizes":         "S,M,L",
				"colors":        "White,Blue",
				"category":      "Men's Apparel",
				"subCategory":   "Shirts",
				"isActive":      "true",
			},
		},
	}
}

// GetImportTemplate returns the import template definition or file
// @Summary Product import template
// @Tags catalog
// @Produce json
// @Param format query string false "json, csv or xlsx"
// @Success 200 {object} ImportTemplate
// @Security BearerAuth
// @Router /catalog/import/template [get]
func (h *TransferHandler) GetImportTemplate(c *gin.Context) {
	template := ProductImportTemplate()

	switch c.DefaultQuery("format", "json") {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		respondOK(c, http.StatusOK, template)
	}
}

func (h *TransferHandler) generateCSVTemplate(c *gin.Context, template ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)

	for _, sample := range template.SampleData {
		row := make([]string, len(template.Columns))
		for i, col := range template.Columns {
			row[i] = sample[col.Name]
		}
		writer.Write(row)
	}
}

func (h *TransferHandler) generateXLSXTemplate(c *gin.Context, template ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, requiredStyle := headerStyles(f)
	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		style := headerStyle
		if col.Required {
			headerText = col.Name + " *"
			style = requiredStyle
		}
		f.SetCellValue(sheetName, cell, headerText)
		f.SetCellStyle(sheetName, cell, cell, style)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	for rowIdx, sample := range template.SampleData {
		for colIdx, col := range template.Columns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, sample[col.Name])
		}
	}

	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Product Import Instructions")
	f.SetCellValue("Instructions", "A3", "Column Definitions:")
	for i, col := range template.Columns {
		row := i + 4
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}
	f.SetColWidth("Instructions", "A", "A", 20)
	f.SetColWidth("Instructions", "B", "B", 45)
	f.SetColWidth("Instructions", "C", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")
	f.Write(c.Writer)
}

func headerStyles(f *excelize.File) (int, int) {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
	})
	return headerStyle, requiredStyle
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) {
	for i, name := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, 20)
	}
	for r, values := range rows {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
}

// ExportCatalog downloads the merchant catalog as a workbook with one
// sheet per entity.
// @Summary Export catalog
// @Tags catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /catalog/export [get]
func (h *TransferHandler) ExportCatalog(c *gin.Context) {
	ctx := c.Request.Context()
	id := merchantID(c)

	f := excelize.NewFile()
	defer f.Close()
	headerStyle, _ := headerStyles(f)

	categories := h.service.ListCategories(ctx, id)
	catRows := make([][]interface{}, 0, len(categories))
	for _, cat := range categories {
		catRows = append(catRows, []interface{}{
			cat.ID, cat.Name.En, cat.Name.Ar, cat.Description.En, cat.Description.Ar,
			cat.Icon, cat.Gradient, cat.IsActive,
		})
	}
	f.SetSheetName("Sheet1", "Categories")
	writeSheet(f, "Categories",
		[]string{"id", "name", "nameAr", "description", "descriptionAr", "icon", "gradient", "isActive"},
		catRows, headerStyle)

	subs := h.service.ListSubCategories(ctx, id, "")
	subRows := make([][]interface{}, 0, len(subs))
	for _, sub := range subs {
		subRows = append(subRows, []interface{}{
			sub.ID, strings.Join(sub.CategoryIDs, ","), sub.Name.En, sub.Name.Ar,
			sub.Description.En, sub.Description.Ar, sub.Icon, sub.Gradient, sub.IsActive,
		})
	}
	f.NewSheet("SubCategories")
	writeSheet(f, "SubCategories",
		[]string{"id", "categoryIds", "name", "nameAr", "description", "descriptionAr", "icon", "gradient", "isActive"},
		subRows, headerStyle)

	products := h.service.ListProducts(ctx, id, "", "")
	productRows := make([][]interface{}, 0, len(products))
	for _, p := range products {
		productRows = append(productRows, []interface{}{
			p.ID, p.LocalizedName.En, p.LocalizedName.Ar, p.LocalizedDescription.En, p.LocalizedDescription.Ar,
			p.Price, p.Image, strings.Join(p.Sizes, ","), strings.Join(p.Colors, ","),
			p.Category, p.SubCategory, p.IsActive,
		})
	}
	f.NewSheet("Products")
	writeSheet(f, "Products",
		[]string{"id", "name", "nameAr", "description", "descriptionAr", "price", "image", "sizes", "colors", "category", "subCategory", "isActive"},
		productRows, headerStyle)

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", "attachment; filename=catalog_export.xlsx")
	if err := f.Write(c.Writer); err != nil {
		h.logger.WithError(err).Error("Failed to write catalog export")
	}
}

// ImportProducts imports products from a CSV or Excel file
// @Summary Import products
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Param validateOnly formData bool false "Only validate rows"
// @Success 200 {object} ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /catalog/import [post]
func (h *TransferHandler) ImportProducts(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return
	}
	defer file.Close()

	validateOnly := c.DefaultPostForm("validateOnly", "false") == "true"

	var rows []map[string]string
	var parseErr error
	switch filename := strings.ToLower(header.Filename); {
	case strings.HasSuffix(filename, ".csv"):
		rows, parseErr = parseCSV(file)
	case strings.HasSuffix(filename, ".xlsx"):
		rows, parseErr = parseXLSX(file)
	default:
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return
	}
	if parseErr != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", parseErr.Error())
		return
	}
	if len(rows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows")
		return
	}

	result := h.processImportRows(c, rows, validateOnly)
	h.logger.WithFields(logrus.Fields{
		"merchant_id": merchantID(c),
		"total":       result.TotalRows,
		"created":     result.SuccessCount,
		"validate":    validateOnly,
	}).Info("Product import processed")
	respondOK(c, http.StatusOK, result)
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	return strings.TrimSuffix(h, " *")
}

func parseCSV(file io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = normalizeHeader(headers[i])
	}

	var rows []map[string]string
	lineNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}
		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1)
		rows = append(rows, row)
		lineNum++
	}
	return rows, nil
}

func parseXLSX(file io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheetName = name
			break
		}
	}

	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = normalizeHeader(headers[i])
	}

	var rows []map[string]string
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2)
		rows = append(rows, row)
	}
	return rows, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// refIndex resolves a row reference by ID or, failing that, by English
// name (case-insensitive).
type refIndex map[string]string

func (r refIndex) add(id, name string) {
	r[id] = id
	if name != "" {
		if _, taken := r[strings.ToLower(name)]; !taken {
			r[strings.ToLower(name)] = id
		}
	}
}

func (r refIndex) resolve(ref string) (string, bool) {
	if id, ok := r[ref]; ok {
		return id, true
	}
	id, ok := r[strings.ToLower(ref)]
	return id, ok
}

func (h *TransferHandler) processImportRows(c *gin.Context, rows []map[string]string, validateOnly bool) *ImportResult {
	ctx := c.Request.Context()
	id := merchantID(c)

	result := &ImportResult{
		TotalRows:  len(rows),
		Errors:     make([]ImportRowError, 0),
		CreatedIDs: make([]string, 0),
	}

	categories := refIndex{}
	for _, cat := range h.service.ListCategories(ctx, id) {
		categories.add(cat.ID, cat.Name.En)
	}
	subCategories := refIndex{}
	for _, sub := range h.service.ListSubCategories(ctx, id, "") {
		subCategories.add(sub.ID, sub.Name.En)
	}

	var required []string
	for _, col := range ProductImportTemplate().Columns {
		if col.Required {
			required = append(required, strings.ToLower(col.Name))
		}
	}

	valid := 0
	for _, row := range rows {
		rowNum, _ := strconv.Atoi(row["_row"])
		fail := func(column, code, message string) {
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Column: column, Code: code, Message: message})
		}

		missing := false
		for _, col := range required {
			if row[col] == "" {
				fail(col, "REQUIRED_FIELD", fmt.Sprintf("Required field '%s' is empty", col))
				missing = true
			}
		}
		if missing {
			continue
		}

		price, err := strconv.ParseFloat(row["price"], 64)
		if err != nil {
			fail("price", "INVALID_NUMBER", "Price must be a number")
			continue
		}
		categoryID, ok := categories.resolve(row["category"])
		if !ok {
			fail("category", "UNKNOWN_CATEGORY", fmt.Sprintf("Category '%s' not found", row["category"]))
			continue
		}
		subCategoryID, ok := subCategories.resolve(row["subcategory"])
		if !ok {
			fail("subCategory", "UNKNOWN_SUBCATEGORY", fmt.Sprintf("Subcategory '%s' not found", row["subcategory"]))
			continue
		}

		input := models.ProductInput{
			Name:        models.LocalizedText{En: row["name"], Ar: row["namear"]},
			Description: models.LocalizedText{En: row["description"], Ar: row["descriptionar"]},
			Price:       price,
			Image:       row["image"],
			Sizes:       splitList(row["sizes"]),
			Colors:      splitList(row["colors"]),
			Category:    categoryID,
			SubCategory: subCategoryID,
		}
		if row["isactive"] != "" {
			active := strings.EqualFold(row["isactive"], "true")
			input.IsActive = &active
		}

		var view *models.ProductView
		if validateOnly {
			err = h.service.ValidateProduct(ctx, id, input)
		} else {
			view, err = h.service.CreateProduct(ctx, id, input)
		}
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			fail(verr.Field, "VALIDATION_ERROR", verr.Message)
		case err != nil:
			fail("", "CREATE_FAILED", err.Error())
		default:
			valid++
			if view != nil {
				result.CreatedIDs = append(result.CreatedIDs, view.ID)
			}
		}
	}

	result.SuccessCount = valid
	result.FailedCount = result.TotalRows - valid
	if validateOnly {
		result.Success = len(result.Errors) == 0
	} else {
		result.Success = valid > 0
	}
	return result
}
