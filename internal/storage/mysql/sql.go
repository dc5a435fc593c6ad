package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, location, price_per_night, rating, category, amenities, image, description)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name            = VALUES(name),
  location        = VALUES(location),
  price_per_night = VALUES(price_per_night),
  rating          = VALUES(rating),
  category        = VALUES(category),
  amenities       = VALUES(amenities),
  image           = VALUES(image),
  description     = VALUES(description),
  updated_at      = CURRENT_TIMESTAMP
`

const upsertRoomSQL = `
INSERT INTO rooms
  (id, hotel_id, name, price, capacity, amenities, available, image)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name      = VALUES(name),
  price     = VALUES(price),
  capacity  = VALUES(capacity),
  amenities = VALUES(amenities),
  available = VALUES(available),
  image     = VALUES(image)
`

const getHotelSQL = `
SELECT id, name, location, price_per_night, rating, category, amenities, image, description
FROM hotels
WHERE id = ?
`

const listHotelsSQL = `
SELECT id, name, location, price_per_night, rating, category, amenities, image, description
FROM hotels
ORDER BY id
`

const listRoomsForHotelSQL = `
SELECT id, hotel_id, name, price, capacity, amenities, available, image
FROM rooms
WHERE hotel_id = ?
ORDER BY id
`

const listAllRoomsSQL = `
SELECT id, hotel_id, name, price, capacity, amenities, available, image
FROM rooms
ORDER BY hotel_id, id
`

const insertUserSQL = `
INSERT INTO users (id, email, password_hash, first_name, last_name, phone, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const getUserSQL = `
SELECT id, email, password_hash, first_name, last_name, phone, created_at
FROM users
WHERE id = ?
`

const getUserByEmailSQL = `
SELECT id, email, password_hash, first_name, last_name, phone, created_at
FROM users
WHERE email = ?
`

const updateProfileSQL = `
UPDATE users SET first_name = ?, last_name = ?, phone = ? WHERE id = ?
`

const listSavedHotelsSQL = `
SELECT hotel_id FROM user_saved_hotels WHERE user_id = ? ORDER BY position
`

const deleteSavedHotelsSQL = `DELETE FROM user_saved_hotels WHERE user_id = ?`

const insertSavedHotelSQL = `
INSERT INTO user_saved_hotels (user_id, hotel_id, position) VALUES (?, ?, ?)
`

const listPaymentMethodsSQL = `
SELECT id, last4, holder, expiry, is_default
FROM payment_methods
WHERE user_id = ?
ORDER BY position
`

const deletePaymentMethodsSQL = `DELETE FROM payment_methods WHERE user_id = ?`

const insertPaymentMethodSQL = `
INSERT INTO payment_methods (id, user_id, last4, holder, expiry, is_default, position)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const listReservationsSQL = `
SELECT id, hotel_id, hotel_name, hotel_location, room_name, image,
       check_in, check_out, price, status, created_at
FROM reservations
WHERE user_id = ?
ORDER BY created_at, id
`

const insertReservationSQL = `
INSERT INTO reservations
  (id, user_id, hotel_id, hotel_name, hotel_location, room_name, image,
   check_in, check_out, price, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateReservationStatusSQL = `
UPDATE reservations SET status = ? WHERE id = ? AND user_id = ?
`
