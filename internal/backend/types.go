package backend

// Records exchanged with the REST backend. Field names follow the backend's
// JSON contract (camelCase, Turkish content fields suffixed Tr).

// Service is a company service entry shown on the services page.
type Service struct {
	ID            int    `json:"id"`
	TitleTr       string `json:"titleTr"`
	DescriptionTr string `json:"descriptionTr"`
	IconURL       string `json:"iconUrl"`
}

// Category groups products.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product is a catalog item. ImageURLs holds at most MaxProductImages
// entries; the cap is enforced at selection time, not by the backend.
type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	CategoryID   int      `json:"categoryId"`
	CategoryName string   `json:"categoryName,omitempty"`
	Color        string   `json:"color,omitempty"`
	Material     string   `json:"material,omitempty"`
	Weight       string   `json:"weight,omitempty"`
	Dimensions   string   `json:"dimensions,omitempty"`
	Link1        string   `json:"link1,omitempty"`
	Link2        string   `json:"link2,omitempty"`
	Link3        string   `json:"link3,omitempty"`
	ImageURLs    []string `json:"imageUrls,omitempty"`
}

// MaxProductImages caps the number of images attached to a product.
const MaxProductImages = 4

// Reference is a customer logo entry. Order is the ascending display sort
// key; uniqueness is not enforced.
type Reference struct {
	ID          int    `json:"id"`
	CompanyName string `json:"companyName"`
	WebsiteURL  string `json:"websiteUrl,omitempty"`
	LogoURL     string `json:"logoUrl"`
	Order       int    `json:"order"`
}

// BlogPost is a blog entry. ContentTr is raw HTML (or markdown authored in
// the admin, rendered before display). Tags is a comma-joined list.
type BlogPost struct {
	ID        int    `json:"id"`
	TitleTr   string `json:"titleTr"`
	ContentTr string `json:"contentTr"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Author    string `json:"author,omitempty"`
	Tags      string `json:"tags,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ContactMessage is created by the public contact form and managed
// (read/delete only) from the admin.
type ContactMessage struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt,omitempty"`
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	ServiceCount   int `json:"serviceCount"`
	ReferenceCount int `json:"referenceCount"`
	BlogCount      int `json:"blogCount"`
	MessageCount   int `json:"messageCount"`
	ProductCount   int `json:"productCount"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type uploadResponse struct {
	URL string `json:"url"`
}
