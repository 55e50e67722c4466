package crawler

type OCCProductResponse struct {
	Items []OCCProduct `json:"items"`
}

// OCCCategoryResponse defines the structure of the category API response.
type OCCCategoryResponse struct {
	TotalResults int          `json:"totalResults"`
	Offset       int          `json:"offset"`
	Limit        int          `json:"limit"`
	Links        []OCCLink    `json:"links"`
	Items        []OCCProduct `json:"items"`
}

// OCCLink defines a link in the API response.
type OCCLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type OCCProduct struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	LongDesc    string `json:"longDescription"`
	Brand       string `json:"brand"`
	Btus        string `json:"x_quantidadeDeBTUs"`
	Ciclo       string `json:"x_ciclo"`
	Tecnologia  string `json:"x_tecnologia"`
	Voltagem    string `json:"x_tension"`
	Potencia    string `json:"x_potencia"`
	Slug        string `json:"seoUrlSlugDerived"`
}
