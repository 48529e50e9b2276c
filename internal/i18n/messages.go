package i18n

var ruMessages = map[string]string{
	"error.bad_request":                "Некорректный запрос",
	"error.unauthorized":               "Требуется авторизация",
	"error.forbidden":                  "Недостаточно прав",
	"error.not_found":                  "Не найдено",
	"error.too_many_requests":          "Слишком много попыток, повторите позже",
	"error.internal":                   "Внутренняя ошибка сервера",
	"error.token_invalid":              "Недействительный токен",
	"error.user_id_invalid":            "Некорректный идентификатор пользователя",
	"error.user_id_type_invalid":       "Некорректный тип идентификатора пользователя",
	"error.invalid_credentials":        "Неверные учетные данные",
	"error.user_disabled":              "Пользователь заблокирован",
	"error.username_exists":            "Пользователь с таким именем уже существует",
	"error.username_invalid":           "Имя пользователя может содержать только буквы, цифры и символы @/./+/-/_ (не более 150)",
	"error.role_invalid":               "Недопустимая роль",
	"error.password_weak":              "Пароль не соответствует требованиям безопасности",
	"error.register_failed":            "Не удалось зарегистрировать пользователя",
	"error.login_failed":               "Не удалось выполнить вход",
	"error.category_not_found":         "Категория не найдена",
	"error.category_parent_not_found":  "Родительская категория не найдена",
	"error.category_name_exists":       "Категория с таким названием уже существует",
	"error.category_cycle":             "Категорию нельзя вложить в саму себя или в её потомка",
	"error.category_invalid":           "Некорректные данные категории",
	"error.category_fetch_failed":      "Не удалось получить категории",
	"error.category_save_failed":       "Не удалось сохранить категорию",
	"error.category_delete_failed":     "Не удалось удалить категорию",
	"error.product_not_found":          "Товар не найден",
	"error.product_invalid":            "Некорректные данные товара",
	"error.product_fetch_failed":       "Не удалось получить товары",
	"error.product_save_failed":        "Не удалось сохранить товар",
	"error.product_delete_failed":      "Не удалось удалить товар",
	"error.product_category_not_found": "Категория товара не найдена",
	"error.user_not_found":             "Пользователь не найден",
	"error.user_status_invalid":        "Недопустимый статус пользователя",
	"error.user_update_failed":         "Не удалось обновить пользователя",
	"error.invalid_quantity":           "Количество должно быть не меньше 1",
	"error.quantity_too_large":         "Количество превышает допустимый предел",
	"error.order_closed":               "Заказ завершён, позиции изменить нельзя",
	"error.order_total_out_of_range":   "Сумма заказа превышает допустимый предел",
	"error.cart_item_not_found":        "Товар в корзине не найден",
	"error.cart_fetch_failed":          "Не удалось получить корзину",
	"error.cart_save_failed":           "Не удалось обновить корзину",
	"error.cart_empty":                 "Корзина пуста",
	"error.order_not_found":            "Заказ не найден",
	"error.order_item_not_found":       "Позиция заказа не найдена",
	"error.order_status_invalid":       "Недопустимый статус заказа",
	"error.order_status_transition":    "Недопустимый переход статуса заказа",
	"error.order_create_failed":        "Не удалось оформить заказ",
	"error.order_fetch_failed":         "Не удалось получить заказы",
	"error.order_update_failed":        "Не удалось обновить заказ",
	"error.authz_fetch_failed":         "Не удалось получить правила доступа",
	"error.authz_update_failed":        "Не удалось обновить правила доступа",
	"error.role_not_found":             "Роль не найдена",
	"error.rate_limited":               "Слишком много попыток, повторите через %d с",
	"error.token_revoked":              "Токен отозван, войдите снова",
	"success.user_registered":          "Пользователь зарегистрирован успешно",
	"success.cart_item_added":          "Товар добавлен в корзину",
	"success.cart_item_updated":        "Количество обновлено",
	"success.cart_item_removed":        "Товар удален из корзины",
	"success.order_created":            "Заказ оформлен успешно",
	"success.order_status_updated":     "Статус заказа обновлен",
	"validation.password_min_length":   "Пароль должен содержать не менее %d символов",
	"validation.password_max_length":   "Пароль не может быть длиннее %d байт",
	"validation.password_need_upper":   "Пароль должен содержать заглавную букву",
	"validation.password_need_lower":   "Пароль должен содержать строчную букву",
	"validation.password_need_number":  "Пароль должен содержать цифру",
	"validation.password_need_special": "Пароль должен содержать специальный символ",
}

var enMessages = map[string]string{
	"error.bad_request":                "Bad request",
	"error.unauthorized":               "Authentication required",
	"error.forbidden":                  "Permission denied",
	"error.not_found":                  "Not found",
	"error.too_many_requests":          "Too many attempts, try again later",
	"error.internal":                   "Internal server error",
	"error.token_invalid":              "Invalid token",
	"error.user_id_invalid":            "Invalid user id",
	"error.user_id_type_invalid":       "Invalid user id type",
	"error.invalid_credentials":        "Invalid credentials",
	"error.user_disabled":              "User is disabled",
	"error.username_exists":            "A user with that username already exists",
	"error.username_invalid":           "Username may contain only letters, digits and @/./+/-/_ (max 150)",
	"error.role_invalid":               "Invalid role",
	"error.password_weak":              "Password does not meet the security policy",
	"error.register_failed":            "Registration failed",
	"error.login_failed":               "Login failed",
	"error.category_not_found":         "Category not found",
	"error.category_parent_not_found":  "Parent category not found",
	"error.category_name_exists":       "Category with this name already exists",
	"error.category_cycle":             "A category cannot be moved under itself or its descendant",
	"error.category_invalid":           "Invalid category data",
	"error.category_fetch_failed":      "Failed to fetch categories",
	"error.category_save_failed":       "Failed to save category",
	"error.category_delete_failed":     "Failed to delete category",
	"error.product_not_found":          "Product not found",
	"error.product_invalid":            "Invalid product data",
	"error.product_fetch_failed":       "Failed to fetch products",
	"error.product_save_failed":        "Failed to save product",
	"error.product_delete_failed":      "Failed to delete product",
	"error.product_category_not_found": "Product category not found",
	"error.user_not_found":             "User not found",
	"error.user_status_invalid":        "Invalid user status",
	"error.user_update_failed":         "Failed to update user",
	"error.invalid_quantity":           "Quantity must be at least 1",
	"error.quantity_too_large":         "Quantity exceeds the allowed limit",
	"error.order_closed":               "Order is closed, items can no longer change",
	"error.order_total_out_of_range":   "Order total exceeds the allowed limit",
	"error.cart_item_not_found":        "Cart item not found",
	"error.cart_fetch_failed":          "Failed to fetch cart",
	"error.cart_save_failed":           "Failed to update cart",
	"error.cart_empty":                 "Cart is empty",
	"error.order_not_found":            "Order not found",
	"error.order_item_not_found":       "Order item not found",
	"error.order_status_invalid":       "Invalid order status",
	"error.order_status_transition":    "Order status transition is not allowed",
	"error.order_create_failed":        "Failed to place order",
	"error.order_fetch_failed":         "Failed to fetch orders",
	"error.order_update_failed":        "Failed to update order",
	"error.authz_fetch_failed":         "Failed to fetch access rules",
	"error.authz_update_failed":        "Failed to update access rules",
	"error.role_not_found":             "Role not found",
	"error.rate_limited":               "Too many attempts, retry in %d seconds",
	"error.token_revoked":              "Token has been revoked, please log in again",
	"success.user_registered":          "User registered successfully",
	"success.cart_item_added":          "Product added to cart",
	"success.cart_item_updated":        "Quantity updated",
	"success.cart_item_removed":        "Product removed from cart",
	"success.order_created":            "Order placed successfully",
	"success.order_status_updated":     "Order status updated",
	"validation.password_min_length":   "Password must be at least %d characters",
	"validation.password_max_length":   "Password must be at most %d bytes",
	"validation.password_need_upper":   "Password must contain an uppercase letter",
	"validation.password_need_lower":   "Password must contain a lowercase letter",
	"validation.password_need_number":  "Password must contain a digit",
	"validation.password_need_special": "Password must contain a special character",
}
