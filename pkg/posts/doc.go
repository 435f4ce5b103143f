// Package posts holds the storefront side of the form engine: the built-in
// schemas (post, doctor, category, product), assembly of a submitted post
// form plus its content blocks into a CreatePostData payload, payload
// validation and encoding, and a REST client for the persistence API.
package posts
