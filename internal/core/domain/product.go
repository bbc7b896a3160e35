package domain

import (
	"strconv"
	"time"
)

var productFields = []Field{
	{Name: "name", Label: "Product Name"},
	{Name: "description", Label: "Description"},
	{Name: "price", Label: "Price"},
	{Name: "stock", Label: "Stock"},
}

// ProductsResource is the products collection. Products accept an optional
// image and therefore travel as multipart bodies.
var ProductsResource = Resource{
	Name:            "products",
	Singular:        "Product",
	IDField:         "ProductID",
	Subject:         "product-page",
	CreatePath:      "products/",
	CreateFields:    productFields,
	UpdateFields:    productFields,
	Encoding:        EncodingMultipart,
	UpdateVerb:      UpdateMethodOverride,
	AttachmentField: "product_image",
	Messages: Messages{
		Created:      "Product Added Successfully",
		Updated:      "Product Information Edited Successfully",
		Deleted:      "Product deleted successfully",
		DeleteFailed: "Error deleting product",
	},
}

// ProductImage records the uploaded image of a product. Only its metadata is
// kept.
type ProductImage struct {
	FileName string `json:"file_name" bson:"file_name"`
	Size     int64  `json:"size" bson:"size"`
}

// Product is a catalogue entry.
type Product struct {
	ProductID   int64         `json:"ProductID" bson:"product_id"`
	Name        string        `json:"name" bson:"name"`
	Description string        `json:"description" bson:"description"`
	Price       float64       `json:"price" bson:"price"`
	Stock       int64         `json:"stock" bson:"stock"`
	Image       *ProductImage `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

// ProductFromRow reads the typed view of a products row. Unparseable numbers
// read as zero.
func ProductFromRow(r Row) Product {
	id, _ := strconv.ParseInt(r.ID(ProductsResource.IDField), 10, 64)
	price, _ := strconv.ParseFloat(r.String("price"), 64)
	stock, _ := strconv.ParseInt(r.String("stock"), 10, 64)
	return Product{
		ProductID:   id,
		Name:        r.String("name"),
		Description: r.String("description"),
		Price:       price,
		Stock:       stock,
	}
}
