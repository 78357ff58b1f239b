package forms

import (
	"mime/multipart"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
)

// Input names of the recipe form.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldIngredients = "ingredients"
	FieldTechnology  = "technology"
	FieldGroup       = "group"
	FieldImage       = "image"
	FieldImageClear  = "image-clear"
)

// imageTypes are the accepted upload types and the extension stored with them.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const (
	msgBadChoice = "Выберите корректный вариант. Вашего варианта нет среди допустимых значений."
	msgBadImage  = "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	msgTooLarge  = "Размер файла превышает допустимый."
)

// Image is an upload that passed validation.
type Image struct {
	Header      *multipart.FileHeader
	ContentType string
	Ext         string
}

// Recipe is the create/edit recipe form.
type Recipe struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description" validate:"required"`
	Ingredients string `form:"ingredients" validate:"required"`
	Technology  string `form:"technology" validate:"required"`
	// Group is the raw select value, "" for no group.
	Group      string `form:"group"`
	ImageClear bool   `form:"image-clear"`

	// GroupID is set by Validate when Group names an existing group.
	GroupID *uint `form:"-"`
	// Image is set by Validate when a valid file was uploaded.
	Image *Image `form:"-"`

	header *multipart.FileHeader
}

// BindRecipe reads the recipe form from r.
func BindRecipe(r Request) *Recipe {
	f := &Recipe{
		Title:       trimmed(r, FieldTitle),
		Description: trimmed(r, FieldDescription),
		Ingredients: trimmed(r, FieldIngredients),
		Technology:  trimmed(r, FieldTechnology),
		Group:       trimmed(r, FieldGroup),
		ImageClear:  r.FormValue(FieldImageClear) != "",
	}

	if fh, err := r.FormFile(FieldImage); err == nil && fh != nil && fh.Filename != "" {
		f.header = fh
	}

	return f
}

// GroupExists reports whether a group id is valid.
type GroupExists func(id uint) (bool, error)

// Validate checks the form. exists resolves the group choice, maxUpload bounds
// the image size in bytes (0 for no limit). A non nil error means the check
// itself failed, not the input.
func (f *Recipe) Validate(exists GroupExists, maxUpload int) (Errors, error) {
	errs := Struct(f)

	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 0)
		if err != nil {
			errs.Add(FieldGroup, msgBadChoice)
		} else {
			ok, err := exists(uint(id))
			if err != nil {
				return nil, err
			}

			if !ok {
				errs.Add(FieldGroup, msgBadChoice)
			} else {
				gid := uint(id)
				f.GroupID = &gid
			}
		}
	}

	if f.header != nil {
		img, msg, err := checkImage(f.header, maxUpload)

		switch {
		case err != nil:
			return nil, err
		case msg != "":
			errs.Add(FieldImage, msg)
		default:
			f.Image = img
		}
	}

	return errs, nil
}

// checkImage sniffs the upload content. It returns a user message for bad input.
func checkImage(fh *multipart.FileHeader, maxUpload int) (*Image, string, error) {
	if maxUpload > 0 && fh.Size > int64(maxUpload) {
		return nil, msgTooLarge, nil
	}

	file, err := fh.Open()
	if err != nil {
		return nil, "", err //nolint:wrapcheck
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, "", err //nolint:wrapcheck
	}

	for t, ext := range imageTypes {
		if mt.Is(t) {
			return &Image{Header: fh, ContentType: t, Ext: ext}, "", nil
		}
	}

	return nil, msgBadImage, nil
}
